package binding

import (
	"fmt"
	"reflect"
	"sync"

	"solr-binder/document"
)

// Binder resolves and caches adapters and converts values at the document
// boundary. Build one with a Builder at startup and share it; a Binder is
// immutable after Build apart from its internal adapter cache, which is safe
// for concurrent use.
type Binder struct {
	factories []Factory
	naming    NamingPolicy
	coercions Coercion
	enums     map[reflect.Type]*enumSpec

	cacheMu sync.RWMutex
	cache   map[reflect.Type]Adapter

	// resolveMu serializes resolution end to end so that at most one concrete
	// adapter ever becomes visible per type.
	resolveMu sync.Mutex
}

// Adapter returns the adapter for t, resolving and caching it on first use.
// Resolution walks the factory chain in priority order: user-registered
// factories first, then the built-ins, then the reflective factory, then the
// legacy-tag factory.
func (b *Binder) Adapter(t reflect.Type) (Adapter, error) {
	if t == nil {
		return nil, &ConfigError{Type: "<nil>", Reason: "nil type requested"}
	}

	b.cacheMu.RLock()
	a, ok := b.cache[t]
	b.cacheMu.RUnlock()
	if ok {
		return a, nil
	}

	b.resolveMu.Lock()
	defer b.resolveMu.Unlock()

	// Re-check under the resolution lock; another goroutine may have resolved
	// t while this one was waiting.
	b.cacheMu.RLock()
	a, ok = b.cache[t]
	b.cacheMu.RUnlock()
	if ok {
		return a, nil
	}

	r := &Resolver{
		binder:   b,
		resolved: make(map[reflect.Type]Adapter),
		inflight: make(map[reflect.Type]*futureAdapter),
	}
	a, err := r.Adapter(t)
	if err != nil {
		return nil, err
	}

	// Publish only after the whole resolution succeeded: every placeholder
	// handed out along the way has its delegate set by now, and a failed
	// resolution leaves the shared cache untouched.
	b.cacheMu.Lock()
	for rt, ra := range r.resolved {
		b.cache[rt] = ra
	}
	b.cacheMu.Unlock()
	return a, nil
}

// AdapterFor is the generic form of Binder.Adapter.
func AdapterFor[T any](b *Binder) (Adapter, error) {
	return b.Adapter(reflect.TypeFor[T]())
}

// Resolver is the view of a Binder handed to factories while a resolution is
// in progress. It tracks the types currently being resolved so that a member
// referring back to one of them (directly or through a cycle) receives a
// forward-reference placeholder instead of recursing forever. Component
// adapters finished along the way collect in resolved; they reach the shared
// cache only when the top-level resolution completes, so other goroutines
// never observe an adapter whose placeholders are still unset.
type Resolver struct {
	binder   *Binder
	resolved map[reflect.Type]Adapter
	inflight map[reflect.Type]*futureAdapter
}

// Adapter resolves the adapter for a component type. Factories call this for
// element, value, and member types.
func (r *Resolver) Adapter(t reflect.Type) (Adapter, error) {
	b := r.binder

	b.cacheMu.RLock()
	a, ok := b.cache[t]
	b.cacheMu.RUnlock()
	if ok {
		return a, nil
	}

	if a, ok := r.resolved[t]; ok {
		return a, nil
	}
	if ph, ok := r.inflight[t]; ok {
		return ph, nil
	}

	// Install the placeholder before any factory runs, remove it no matter
	// how resolution ends. A failed resolution leaves no trace, so a later
	// request re-resolves instead of hitting a poisoned entry.
	ph := &futureAdapter{typeName: t.String()}
	r.inflight[t] = ph
	defer delete(r.inflight, t)

	for _, f := range b.factories {
		a, err := f.Create(r, t)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue
		}
		ph.set(a)
		r.resolved[t] = a
		return a, nil
	}

	return nil, &ResolutionError{Type: t.String()}
}

// Naming returns the active naming policy.
func (r *Resolver) Naming() NamingPolicy { return r.binder.naming }

// Coercions returns the active coercion mask.
func (r *Resolver) Coercions() Coercion { return r.binder.coercions }

func (r *Resolver) enumFor(t reflect.Type) (*enumSpec, bool) {
	spec, ok := r.binder.enums[t]
	return spec, ok
}

// FromDocument converts one document to a value of type T.
func FromDocument[T any](b *Binder, doc *document.Document) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	a, err := b.Adapter(t)
	if err != nil {
		return zero, err
	}
	v, err := a.Read(doc)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, conversionErr(t.String(), v, "adapter produced an unexpected type")
	}
	return out, nil
}

// FromDocuments converts a list of documents to values of type T, in order.
// An empty or nil input yields an empty, non-nil slice.
func FromDocuments[T any](b *Binder, docs []*document.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		v, err := FromDocument[T](b, doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ToDocument converts a value to an input document. The value's dynamic type
// must resolve to a struct adapter.
func (b *Binder) ToDocument(v any) (*document.InputDocument, error) {
	if v == nil {
		return nil, &ConfigError{Type: "<nil>", Reason: "cannot convert nil value to a document"}
	}
	t := reflect.TypeOf(v)
	a, err := b.Adapter(t)
	if err != nil {
		return nil, err
	}
	raw, err := a.Write(v)
	if err != nil {
		return nil, err
	}
	doc, ok := raw.(*document.InputDocument)
	if !ok {
		return nil, conversionErr("*document.InputDocument", raw,
			fmt.Sprintf("adapter for %s does not produce documents", t))
	}
	return doc, nil
}

// ToDocuments converts a slice of values to input documents, in order.
func ToDocuments[T any](b *Binder, vs []T) ([]*document.InputDocument, error) {
	out := make([]*document.InputDocument, 0, len(vs))
	for i, v := range vs {
		doc, err := b.ToDocument(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, doc)
	}
	return out, nil
}
