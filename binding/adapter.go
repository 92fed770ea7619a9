// Package binding converts between Go values and Solr documents. A Binder
// owns an ordered chain of adapter factories plus a cache of resolved
// adapters; the reflective factory at the end of the chain assembles
// whole-struct adapters out of per-member ones, which is what makes the chain
// composable: a slice adapter wraps an element adapter, a struct adapter
// delegates to per-member adapters, and so on.
package binding

import "reflect"

// Adapter converts between one Go type and its raw document representation.
//
// For simple types Read receives a raw field value and Write returns a raw
// value suitable for InputDocument.SetField. For struct types Read receives a
// *document.Document and Write returns a *document.InputDocument.
//
// Adapters must be stateless or hold only immutable references; once
// resolved they are shared freely across goroutines.
type Adapter interface {
	// Read converts a raw document value to a Go value. A nil raw value maps
	// to the type's empty form (nil for most adapters).
	Read(raw any) (any, error)

	// Write converts a Go value to a raw document value. A nil result means
	// the value has no document representation and the field is omitted.
	Write(v any) (any, error)
}

// Factory produces adapters for the types it recognizes. Factories are
// consulted in registration order; returning (nil, nil) passes the request to
// the next factory in the chain.
//
// A factory may call r.Adapter to obtain adapters for component types (a list
// factory resolves its element type, the reflective factory resolves every
// member type).
type Factory interface {
	Create(r *Resolver, t reflect.Type) (Adapter, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(r *Resolver, t reflect.Type) (Adapter, error)

func (f FactoryFunc) Create(r *Resolver, t reflect.Type) (Adapter, error) { return f(r, t) }

// NullSafe wraps an adapter so that nil passes through in both directions
// without reaching the delegate. The built-in scalar and container adapters
// handle nil themselves; this is a convenience for user-registered adapters.
func NullSafe(delegate Adapter) Adapter {
	return nullSafeAdapter{delegate}
}

type nullSafeAdapter struct {
	delegate Adapter
}

func (a nullSafeAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return a.delegate.Read(raw)
}

func (a nullSafeAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return a.delegate.Write(v)
}

// futureAdapter is the forward-reference placeholder installed under a type
// before its factories run. Members that refer back to the type being
// resolved receive the placeholder instead of recursing forever; the
// placeholder starts delegating once resolution completes.
type futureAdapter struct {
	typeName string
	delegate Adapter
}

func (f *futureAdapter) set(a Adapter) { f.delegate = a }

func (f *futureAdapter) Read(raw any) (any, error) {
	if f.delegate == nil {
		return nil, &ConfigError{Type: f.typeName, Reason: "adapter used before its resolution completed (cyclic type resolved eagerly)"}
	}
	return f.delegate.Read(raw)
}

func (f *futureAdapter) Write(v any) (any, error) {
	if f.delegate == nil {
		return nil, &ConfigError{Type: f.typeName, Reason: "adapter used before its resolution completed (cyclic type resolved eagerly)"}
	}
	return f.delegate.Write(v)
}
