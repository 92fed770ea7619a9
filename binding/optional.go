package binding

import (
	"reflect"
)

// Optional is an explicit present/absent wrapper for member types whose zero
// value is meaningful on its own. Reading a document that lacks the field
// yields None; writing None omits the field instead of writing a null.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) IsPresent() bool { return o.present }

// OrElse returns the held value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// optioner and optionSetter let the factory work with Optional[T] for any T
// without knowing T statically.
type optioner interface {
	presentAny() (any, bool)
	elemType() reflect.Type
}

type optionSetter interface {
	setAny(v any) bool
}

func (o Optional[T]) presentAny() (any, bool) { return o.value, o.present }
func (o Optional[T]) elemType() reflect.Type  { return reflect.TypeFor[T]() }

func (o *Optional[T]) setAny(v any) bool {
	t, ok := v.(T)
	if !ok {
		return false
	}
	o.value, o.present = t, true
	return true
}

var optionerType = reflect.TypeOf((*optioner)(nil)).Elem()

// optionalFactory handles Optional[T]. The adapter is never short-circuited
// on nil: reading an absent value still runs, producing a real None, and
// writing None yields nil so the engine omits the field.
func optionalFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Struct || !t.Implements(optionerType) {
		return nil, nil
	}
	inner, err := r.Adapter(reflect.Zero(t).Interface().(optioner).elemType())
	if err != nil {
		return nil, err
	}
	return optionalAdapter{t, inner}, nil
}

type optionalAdapter struct {
	t     reflect.Type
	inner Adapter
}

func (a optionalAdapter) Read(raw any) (any, error) {
	empty := reflect.New(a.t)
	if raw == nil {
		return empty.Elem().Interface(), nil
	}
	v, err := a.inner.Read(raw)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return empty.Elem().Interface(), nil
	}
	if !empty.Interface().(optionSetter).setAny(v) {
		return nil, conversionErr(a.t.String(), v, "inner adapter produced an unexpected type")
	}
	return empty.Elem().Interface(), nil
}

func (a optionalAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	o, ok := v.(optioner)
	if !ok {
		return nil, conversionErr(a.t.String(), v, "")
	}
	inner, present := o.presentAny()
	if !present {
		return nil, nil
	}
	return a.inner.Write(inner)
}

// pointerFactory handles *E members, the lightweight optional form: a nil
// pointer is absent and never written, a present raw value reads into a
// freshly allocated E.
func pointerFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Pointer {
		return nil, nil
	}
	elem, err := r.Adapter(t.Elem())
	if err != nil {
		return nil, err
	}
	return pointerAdapter{t, elem}, nil
}

type pointerAdapter struct {
	t    reflect.Type
	elem Adapter
}

func (a pointerAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := a.elem.Read(raw)
	if err != nil {
		return nil, err
	}
	out := reflect.New(a.t.Elem())
	if v != nil {
		ev, err := valueAs(a.t.Elem(), v)
		if err != nil {
			return nil, err
		}
		out.Elem().Set(ev)
	}
	return out.Interface(), nil
}

func (a pointerAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, nil
	}
	return a.elem.Write(rv.Elem().Interface())
}
