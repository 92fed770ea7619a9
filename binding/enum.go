package binding

import (
	"errors"
	"fmt"
	"reflect"

	"solr-binder/document"
)

// enumFactory handles types whose value set was registered with
// RegisterEnum. Reads accept the enum value itself, its exact symbolic name,
// or (when CoerceEnumOrdinal is on) the constant's underlying integer value;
// writes always produce the symbolic name.
func enumFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	spec, ok := r.enumFor(t)
	if !ok {
		return nil, nil
	}
	return enumAdapter{t, spec, r.Coercions()}, nil
}

// enumSpec is the registered value set of one enum type, indexed by symbolic
// name and, for integer-kind enums, by the constant's underlying value.
type enumSpec struct {
	byName map[string]any
	byInt  map[int64]any
	names  map[any]string
}

func newEnumSpec[E comparable](values []E) (*enumSpec, error) {
	if len(values) == 0 {
		return nil, errors.New("enum registration needs at least one value")
	}

	spec := &enumSpec{
		byName: make(map[string]any, len(values)),
		byInt:  make(map[int64]any, len(values)),
		names:  make(map[any]string, len(values)),
	}
	for _, v := range values {
		name, err := enumName(v)
		if err != nil {
			return nil, err
		}
		spec.byName[name] = v
		spec.names[v] = name

		rv := reflect.ValueOf(v)
		if isIntKind(rv.Kind()) {
			spec.byInt[rv.Int()] = v
		} else if isUintKind(rv.Kind()) {
			spec.byInt[int64(rv.Uint())] = v
		}
	}
	return spec, nil
}

func enumName[E comparable](v E) (string, error) {
	if s, ok := any(v).(fmt.Stringer); ok {
		return s.String(), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	return "", fmt.Errorf("enum type %T needs a String method or a string underlying type", v)
}

type enumAdapter struct {
	t      reflect.Type
	spec   *enumSpec
	coerce Coercion
}

func (a enumAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if reflect.TypeOf(raw) == a.t {
		return raw, nil
	}
	switch document.KindOf(raw) {
	case document.KindString:
		name := reflect.ValueOf(raw).Convert(reflect.TypeFor[string]()).Interface().(string)
		v, ok := a.spec.byName[name]
		if !ok {
			return nil, conversionErr(a.t.String(), raw, fmt.Sprintf("no enum value named %q", name))
		}
		return v, nil
	case document.KindInt, document.KindUint, document.KindFloat:
		if !a.coerce.allows(CoerceEnumOrdinal) {
			break
		}
		rv := reflect.ValueOf(raw)
		var ord int64
		switch document.KindOf(raw) {
		case document.KindInt:
			ord = rv.Int()
		case document.KindUint:
			ord = int64(rv.Uint())
		default:
			ord = int64(rv.Float())
		}
		v, ok := a.spec.byInt[ord]
		if !ok {
			return nil, conversionErr(a.t.String(), raw, fmt.Sprintf("enum ordinal %d out of range", ord))
		}
		return v, nil
	}
	return nil, conversionErr(a.t.String(), raw, "")
}

func (a enumAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	name, ok := a.spec.names[v]
	if !ok {
		return nil, conversionErr(a.t.String(), v, "value not in the registered enum set")
	}
	return name, nil
}
