package binding

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"solr-binder/document"
)

// Tag specs for the two metadata mechanisms. The primary factory reads the
// `solr` tag and falls back to the legacy `field` tag per member, so that a
// member carrying both uses the `solr` facts exclusively. The legacy factory
// reads only `field` tags and sits at the end of the chain; it sees a type
// only when the primary factory declined it.
var (
	primaryTags = tagSpec{
		tag:            "solr",
		nestedOpt:      "nested",
		fallbackTag:    "field",
		fallbackNested: "child",
		sentinel:       "#default",
	}
	legacyOnlyTags = tagSpec{
		tag:       "field",
		nestedOpt: "child",
		sentinel:  "#default",
	}
)

type tagSpec struct {
	tag            string
	nestedOpt      string
	fallbackTag    string
	fallbackNested string
	// sentinel is a tag name meaning "derive from the member name", kept for
	// compatibility with the legacy mechanism's default marker.
	sentinel string
}

// memberFacts are the two declarative facts a tag supplies, plus whether they
// came from the spec's own tag (which is what lets a factory claim the type).
type memberFacts struct {
	fieldName string // empty means: apply the naming policy
	nested    bool
	skip      bool
	own       bool
}

func (s tagSpec) facts(sf reflect.StructField) (memberFacts, bool) {
	if raw, ok := sf.Tag.Lookup(s.tag); ok {
		return s.parse(raw, s.nestedOpt, true), true
	}
	if s.fallbackTag != "" {
		if raw, ok := sf.Tag.Lookup(s.fallbackTag); ok {
			return s.parse(raw, s.fallbackNested, false), true
		}
	}
	return memberFacts{}, false
}

func (s tagSpec) parse(raw, nestedOpt string, own bool) memberFacts {
	name, rest, _ := strings.Cut(raw, ",")
	facts := memberFacts{fieldName: name, own: own}
	if name == "-" && rest == "" {
		facts.skip = true
		return facts
	}
	if name == s.sentinel {
		facts.fieldName = ""
	}
	for _, opt := range strings.Split(rest, ",") {
		if opt == nestedOpt {
			facts.nested = true
		}
	}
	return facts
}

// boundMember is one target-type member mapped to a document field, with the
// access path and resolved adapter needed to move values in both directions.
type boundMember struct {
	name      string // the member's own name
	fieldName string // resolved document field name
	t         reflect.Type
	nested    bool
	plural    bool // nested member consuming the whole child list
	dynamic   bool // string-keyed map spread over top-level fields
	optional  bool // adapter must run even on an absent raw value
	adapter   Adapter

	index  []int // field index path; nil for setter-backed members
	setter int   // method index on *T, -1 if field-backed
	getter int   // method index on *T, -1 if missing (write fails fast)
}

// structFactory is the reflective binding engine: it discovers the bindable
// members of a struct type and assembles one composite adapter with
// whole-object read and write behavior.
type structFactory struct {
	spec tagSpec
}

func newStructFactory(spec tagSpec) *structFactory {
	return &structFactory{spec: spec}
}

func (f *structFactory) Create(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	// Discovery first, adapter resolution second: a type this factory does
	// not claim must pass down the chain untouched, without resolving (and
	// possibly failing on) its member types.
	members, claimed := f.discover(t)
	if !claimed {
		return nil, nil
	}
	f.resolveNames(r, members)

	for i := range members {
		m := &members[i]
		a, err := r.Adapter(m.t)
		if err != nil {
			return nil, fmt.Errorf("member %s.%s: %w", t, m.name, err)
		}
		m.adapter = a
	}

	return &structAdapter{t: t, members: members}, nil
}

// discover walks the type's own fields first and its embedded structs after,
// so a name bound at the outer level shadows the same name from an embedded
// level; embedded structs themselves recurse the same way. Claiming the type
// takes at least one member tagged with this factory's own mechanism; setter
// methods are collected last, never displace a field-bound member, and do not
// claim a type on their own.
func (f *structFactory) discover(t reflect.Type) ([]boundMember, bool) {
	var members []boundMember
	seen := make(map[string]bool)
	if !f.collectFields(t, nil, seen, &members) {
		return nil, false
	}
	f.collectSetters(t, seen, &members)
	return members, true
}

func (f *structFactory) collectFields(t reflect.Type, path []int, seen map[string]bool, out *[]boundMember) bool {
	claimed := false
	var embedded []int

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get(f.spec.tag) == "" {
			embedded = append(embedded, i)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if seen[sf.Name] {
			continue
		}
		seen[sf.Name] = true

		facts, ok := f.spec.facts(sf)
		if !ok || facts.skip {
			continue
		}
		claimed = claimed || facts.own
		*out = append(*out, f.bind(sf.Name, sf.Type, facts, append(slices.Clone(path), i)))
	}

	for _, i := range embedded {
		sub := f.collectFields(t.Field(i).Type, append(slices.Clone(path), i), seen, out)
		claimed = claimed || sub
	}
	return claimed
}

func (f *structFactory) collectSetters(t reflect.Type, seen map[string]bool, out *[]boundMember) {
	pt := reflect.PointerTo(t)
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		name, ok := strings.CutPrefix(m.Name, "Set")
		if !ok || name == "" || seen[name] {
			continue
		}
		// The remainder must itself look like an exported member name, so
		// helpers such as Settle or Settings are not mistaken for setters.
		if first, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(first) {
			continue
		}
		if m.Type.NumIn() != 2 || m.Type.NumOut() != 0 {
			continue
		}
		seen[name] = true

		paramType := m.Type.In(1)
		bound := f.bind(name, paramType, memberFacts{}, nil)
		bound.setter = i
		bound.getter = -1
		if g, ok := pt.MethodByName(name); ok &&
			g.Type.NumIn() == 1 && g.Type.NumOut() == 1 && g.Type.Out(0) == paramType {
			bound.getter = g.Index
		}
		*out = append(*out, bound)
	}
}

func (f *structFactory) bind(name string, t reflect.Type, facts memberFacts, path []int) boundMember {
	dynamic := !facts.nested &&
		t.Kind() == reflect.Map &&
		t.Key().Kind() == reflect.String &&
		t.Elem() != reflect.TypeFor[struct{}]()

	return boundMember{
		name:      name,
		fieldName: facts.fieldName,
		t:         t,
		nested:    facts.nested,
		plural:    t.Kind() == reflect.Slice || t.Kind() == reflect.Array,
		dynamic:   dynamic,
		optional:  t.Implements(optionerType),
		index:     path,
		setter:    -1,
		getter:    -1,
	}
}

// resolveNames fills in field names the tags left open: the explicit override
// always wins, everything else goes through the naming policy.
func (f *structFactory) resolveNames(r *Resolver, members []boundMember) {
	for i := range members {
		if members[i].fieldName == "" {
			members[i].fieldName = r.Naming()(members[i].name)
		}
	}
}

type structAdapter struct {
	t       reflect.Type
	members []boundMember
}

func (a *structAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	doc, ok := raw.(*document.Document)
	if !ok {
		return nil, conversionErr(a.t.String(), raw, "expected a document")
	}
	if doc == nil {
		return nil, nil
	}

	ptr := reflect.New(a.t)
	target := ptr.Elem()

	for i := range a.members {
		m := &a.members[i]
		rawVal, present := a.source(m, doc)
		if !present {
			// Left unset: the member keeps its zero value, which is how the
			// absent/empty distinction survives the read.
			continue
		}
		got, err := m.adapter.Read(rawVal)
		if err != nil {
			return nil, memberErr(a.t.String(), m.name, err)
		}
		if got == nil && !m.optional {
			continue
		}
		if err := a.assign(ptr, m, got); err != nil {
			return nil, err
		}
	}
	return target.Interface(), nil
}

// source locates the raw value feeding a member. Nested members prefer the
// named field's own value over the document's child list; plural members
// consume the whole list, singular ones only the first entry.
func (a *structAdapter) source(m *boundMember, doc *document.Document) (any, bool) {
	if !m.nested {
		raw, ok := doc.Get(m.fieldName)
		if ok {
			return raw, true
		}
		if m.optional {
			// The Optional adapter still runs so absence becomes a real None.
			return nil, true
		}
		return nil, false
	}

	if raw, ok := doc.Get(m.fieldName); ok && raw != nil {
		return raw, true
	}
	children := doc.Children()
	if len(children) == 0 {
		return nil, false
	}
	if m.plural {
		return children, true
	}
	return children[0], true
}

func (a *structAdapter) assign(ptr reflect.Value, m *boundMember, v any) error {
	if m.setter >= 0 {
		ev, err := valueAs(m.t, v)
		if err != nil {
			return memberErr(a.t.String(), m.name, err)
		}
		ptr.Method(m.setter).Call([]reflect.Value{ev})
		return nil
	}
	field := ptr.Elem().FieldByIndex(m.index)
	ev, err := valueAs(field.Type(), v)
	if err != nil {
		return memberErr(a.t.String(), m.name, err)
	}
	field.Set(ev)
	return nil
}

func (a *structAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Type() != a.t {
		return nil, conversionErr(a.t.String(), v, "")
	}

	// Setter-backed getters may have pointer receivers, so work on an
	// addressable copy.
	ptr := reflect.New(a.t)
	ptr.Elem().Set(rv)

	doc := document.NewInput()
	for i := range a.members {
		m := &a.members[i]
		cur, err := a.current(ptr, m)
		if err != nil {
			return nil, err
		}
		if isNilValue(cur) {
			// Absent values are omitted outright; the adapter never runs, so
			// optional scalars do not end up as written nulls.
			continue
		}
		raw, err := m.adapter.Write(cur)
		if err != nil {
			return nil, memberErr(a.t.String(), m.name, err)
		}
		if raw == nil {
			continue
		}
		a.emit(doc, m, raw)
	}
	return doc, nil
}

// current reads the member's present value. Reading never needs this, which
// is why a setter-backed member without a getter only fails here.
func (a *structAdapter) current(ptr reflect.Value, m *boundMember) (any, error) {
	if m.setter >= 0 {
		if m.getter < 0 {
			return nil, &ConfigError{
				Type:   a.t.String(),
				Member: m.name,
				Reason: "setter-bound member has no matching getter for writing",
			}
		}
		out := ptr.Method(m.getter).Call(nil)
		return out[0].Interface(), nil
	}
	return ptr.Elem().FieldByIndex(m.index).Interface(), nil
}

func (a *structAdapter) emit(doc *document.InputDocument, m *boundMember, raw any) {
	if m.nested {
		switch val := raw.(type) {
		case *document.InputDocument:
			doc.AddChild(val)
		case []any:
			for _, item := range val {
				if child, ok := item.(*document.InputDocument); ok {
					doc.AddChild(child)
				}
			}
		}
		// Anything else a nested member produced has no document shape and is
		// dropped.
		return
	}
	if m.dynamic {
		if entries, ok := raw.(map[string]any); ok {
			keys := make([]string, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				doc.SetField(k, entries[k])
			}
			return
		}
	}
	doc.SetField(m.fieldName, raw)
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
}
