package binding

import (
	"reflect"
	"time"

	"solr-binder/document"
)

// timeFactory handles time.Time and time.Duration. The store's native
// timestamp form is time.Time; reads additionally accept ISO-8601 strings and
// integer epoch milliseconds, writes always normalize back to a UTC
// time.Time regardless of which form was read.
func timeFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	switch t {
	default:
		return nil, nil
	case reflect.TypeFor[time.Time]():
		return timeAdapter{r.Coercions()}, nil
	case reflect.TypeFor[time.Duration]():
		return durationAdapter{r.Coercions()}, nil
	}
}

type timeAdapter struct {
	coerce Coercion
}

func (a timeAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch document.KindOf(raw) {
	case document.KindTime:
		return raw.(time.Time), nil
	case document.KindString:
		if a.coerce.allows(CoerceTextTime) {
			ts, err := time.Parse(time.RFC3339Nano, raw.(string))
			if err != nil {
				return nil, conversionErr("time.Time", raw, err.Error())
			}
			return ts, nil
		}
	case document.KindInt:
		if a.coerce.allows(CoerceEpochMillis) {
			return time.UnixMilli(reflect.ValueOf(raw).Int()).UTC(), nil
		}
	case document.KindUint:
		if a.coerce.allows(CoerceEpochMillis) {
			return time.UnixMilli(int64(reflect.ValueOf(raw).Uint())).UTC(), nil
		}
	case document.KindFloat:
		if a.coerce.allows(CoerceEpochMillis) {
			return time.UnixMilli(int64(reflect.ValueOf(raw).Float())).UTC(), nil
		}
	}
	return nil, conversionErr("time.Time", raw, "")
}

func (a timeAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	ts, ok := v.(time.Time)
	if !ok {
		return nil, conversionErr("time.Time", v, "")
	}
	return ts.UTC(), nil
}

// durationAdapter accepts a duration string ("2h45m") or integer nanoseconds
// and writes the textual form, which round-trips without precision loss.
type durationAdapter struct {
	coerce Coercion
}

func (a durationAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, conversionErr("time.Duration", raw, err.Error())
		}
		return d, nil
	}
	switch document.KindOf(raw) {
	case document.KindInt:
		return time.Duration(reflect.ValueOf(raw).Int()), nil
	case document.KindUint:
		return time.Duration(reflect.ValueOf(raw).Uint()), nil
	}
	return nil, conversionErr("time.Duration", raw, "")
}

func (a durationAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	d, ok := v.(time.Duration)
	if !ok {
		return nil, conversionErr("time.Duration", v, "")
	}
	return d.String(), nil
}
