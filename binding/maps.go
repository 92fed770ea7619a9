package binding

import (
	"fmt"
	"reflect"
)

// mapFactory handles map[string]V, the shape used for dynamic field groups
// where the field names are only known at runtime. Only string-like keys make
// sense for document fields; any other key type is a configuration error
// raised as soon as the map type is requested. map[E]struct{} is claimed by
// the set factory before this one runs.
func mapFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() != reflect.Map {
		return nil, nil
	}
	if t.Key().Kind() != reflect.String {
		return nil, &ConfigError{
			Type:   t.String(),
			Reason: fmt.Sprintf("only string-keyed maps bind to document fields, got key type %s", t.Key()),
		}
	}
	value, err := r.Adapter(t.Elem())
	if err != nil {
		return nil, err
	}
	return mapAdapter{t, value}, nil
}

type mapAdapter struct {
	t     reflect.Type
	value Adapter
}

func (a mapAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, conversionErr(a.t.String(), raw, "")
	}
	out := reflect.MakeMapWithSize(a.t, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := valueAs(a.t.Key(), fmt.Sprint(iter.Key().Interface()))
		if err != nil {
			return nil, err
		}
		v, err := a.value.Read(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", iter.Key(), err)
		}
		ev, err := valueAs(a.t.Elem(), v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", iter.Key(), err)
		}
		out.SetMapIndex(key, ev)
	}
	return out.Interface(), nil
}

func (a mapAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, conversionErr(a.t.String(), v, "")
	}
	if rv.IsNil() {
		return nil, nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		w, err := a.value.Write(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", iter.Key(), err)
		}
		out[fmt.Sprint(iter.Key().Interface())] = w
	}
	return out, nil
}
