package binding

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// sliceFactory handles []E for every element type except byte (byte blobs
// belong to the scalar factory). Reads map element-wise over a list-like raw
// value; a bare scalar is up-converted to a one-element slice, which is how
// the store returns a multi-valued field that currently holds one value.
func sliceFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Slice || t.Elem().Kind() == reflect.Uint8 {
		return nil, nil
	}
	elem, err := r.Adapter(t.Elem())
	if err != nil {
		return nil, err
	}
	return sliceAdapter{t, elem, r.Coercions()}, nil
}

type sliceAdapter struct {
	t      reflect.Type
	elem   Adapter
	coerce Coercion
}

func (a sliceAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := listify(a.t.String(), raw, a.coerce)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(a.t, 0, len(items))
	for i, item := range items {
		v, err := a.elem.Read(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ev, err := valueAs(a.t.Elem(), v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = reflect.Append(out, ev)
	}
	return out.Interface(), nil
}

func (a sliceAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, nil
	}
	return writeElements(a.elem, rv)
}

// arrayFactory mirrors slice semantics for [N]E, materializing into the fixed
// component type. A raw list longer than the array is a conversion error;
// a shorter one leaves the tail at zero values.
func arrayFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Array {
		return nil, nil
	}
	elem, err := r.Adapter(t.Elem())
	if err != nil {
		return nil, err
	}
	return arrayAdapter{t, elem, r.Coercions()}, nil
}

type arrayAdapter struct {
	t      reflect.Type
	elem   Adapter
	coerce Coercion
}

func (a arrayAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := listify(a.t.String(), raw, a.coerce)
	if err != nil {
		return nil, err
	}
	if len(items) > a.t.Len() {
		return nil, conversionErr(a.t.String(), raw,
			fmt.Sprintf("%d elements do not fit", len(items)))
	}
	out := reflect.New(a.t).Elem()
	for i, item := range items {
		v, err := a.elem.Read(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ev, err := valueAs(a.t.Elem(), v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(ev)
	}
	return out.Interface(), nil
}

func (a arrayAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return writeElements(a.elem, reflect.ValueOf(v))
}

// setFactory handles map[E]struct{} sets. Reads collect a list-like raw value
// into the set; writes serialize the members as a value list ordered by their
// textual form, since Go map iteration order would not be stable.
func setFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Map || t.Elem() != reflect.TypeFor[struct{}]() {
		return nil, nil
	}
	elem, err := r.Adapter(t.Key())
	if err != nil {
		return nil, err
	}
	return setAdapter{t, elem, r.Coercions()}, nil
}

type setAdapter struct {
	t      reflect.Type
	elem   Adapter
	coerce Coercion
}

func (a setAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := listify(a.t.String(), raw, a.coerce)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeMapWithSize(a.t, len(items))
	empty := reflect.ValueOf(struct{}{})
	for i, item := range items {
		v, err := a.elem.Read(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ev, err := valueAs(a.t.Key(), v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.SetMapIndex(ev, empty)
	}
	return out.Interface(), nil
}

func (a setAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.IsNil() {
		return nil, nil
	}
	out := make([]any, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		w, err := a.elem.Write(key.Interface())
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	slices.SortFunc(out, func(x, y any) int {
		return strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
	})
	return out, nil
}

// listify turns a raw value into a list of elements. Slices and arrays are
// iterated as-is, so raw forms like []any, []string, and []*document.Document
// all work; a bare scalar becomes a one-element list under CoerceScalarList.
func listify(target string, raw any, coerce Coercion) ([]any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	if coerce.allows(CoerceScalarList) {
		return []any{raw}, nil
	}
	return nil, conversionErr(target, raw, "not a list")
}

func writeElements(elem Adapter, rv reflect.Value) (any, error) {
	out := make([]any, 0, rv.Len())
	for i := range rv.Len() {
		w, err := elem.Write(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// valueAs turns an adapter result back into a reflect value of the wanted
// type, converting between close types where the language allows it.
func valueAs(want reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == want || rv.Type().AssignableTo(want) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, conversionErr(want.String(), v, "")
}
