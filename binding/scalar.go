package binding

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"solr-binder/document"
	"solr-binder/utils"
)

// scalarFactory handles strings, booleans, every numeric kind, byte blobs,
// and the untyped any. Named types of those kinds are covered too; values are
// produced in the exact requested type. The store returns most scalars
// natively, so these adapters mainly coerce between close forms (a field
// typed int32 arriving as int64, a float arriving as a numeric string).
func scalarFactory(r *Resolver, t reflect.Type) (Adapter, error) {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		// Pass-through for any, used when the value type is not known at
		// compile time (e.g. map[string]any dynamic groups).
		return passAdapter{}, nil
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return bytesAdapter{t}, nil
	}

	switch t.Kind() {
	default:
		return nil, nil
	case reflect.String:
		return stringAdapter{t}, nil
	case reflect.Bool:
		return boolAdapter{t, r.Coercions()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return numberAdapter{t, r.Coercions()}, nil
	}
}

type passAdapter struct{}

func (passAdapter) Read(raw any) (any, error) { return raw, nil }
func (passAdapter) Write(v any) (any, error)  { return v, nil }

type stringAdapter struct {
	t reflect.Type
}

func (a stringAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return a.typed(v), nil
	case []byte:
		return a.typed(string(v)), nil
	case fmt.Stringer:
		return a.typed(v.String()), nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.String {
		return a.typed(rv.String()), nil
	}
	if document.KindOf(raw).IsScalar() {
		return a.typed(fmt.Sprint(raw)), nil
	}
	return nil, conversionErr(a.t.String(), raw, "")
}

func (a stringAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return reflect.ValueOf(v).Convert(reflect.TypeFor[string]()).Interface(), nil
}

func (a stringAdapter) typed(s string) any {
	return reflect.ValueOf(s).Convert(a.t).Interface()
}

type boolAdapter struct {
	t      reflect.Type
	coerce Coercion
}

func (a boolAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(raw)
	switch document.KindOf(raw) {
	case document.KindBool:
		return a.typed(rv.Bool()), nil
	case document.KindString:
		if a.coerce.allows(CoerceTextualBool) {
			b, err := strconv.ParseBool(rv.String())
			if err != nil {
				return nil, conversionErr(a.t.String(), raw, err.Error())
			}
			return a.typed(b), nil
		}
	case document.KindInt:
		if a.coerce.allows(CoerceNumericBool) {
			return a.typed(rv.Int() != 0), nil
		}
	case document.KindUint:
		if a.coerce.allows(CoerceNumericBool) {
			return a.typed(rv.Uint() != 0), nil
		}
	case document.KindFloat:
		if a.coerce.allows(CoerceNumericBool) {
			return a.typed(rv.Float() != 0), nil
		}
	}
	return nil, conversionErr(a.t.String(), raw, "")
}

func (a boolAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return reflect.ValueOf(v).Convert(reflect.TypeFor[bool]()).Interface(), nil
}

func (a boolAdapter) typed(b bool) any {
	return reflect.ValueOf(b).Convert(a.t).Interface()
}

type numberAdapter struct {
	t      reflect.Type
	coerce Coercion
}

func (a numberAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(raw)
	switch document.KindOf(raw) {
	case document.KindInt:
		return a.fromInt(rv.Int(), raw)
	case document.KindUint:
		return a.fromUint(rv.Uint(), raw)
	case document.KindFloat:
		return a.fromFloat(rv.Float(), raw)
	case document.KindString:
		if a.coerce.allows(CoerceTextNumber) {
			return a.fromString(rv.String(), raw)
		}
	}
	return nil, conversionErr(a.t.String(), raw, "")
}

func (a numberAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	// Normalize named numeric types to their built-in kind.
	return rv.Convert(builtinNumeric(rv.Kind())).Interface(), nil
}

func (a numberAdapter) fromInt(i int64, raw any) (any, error) {
	out := reflect.New(a.t).Elem()
	switch {
	case isIntKind(a.t.Kind()):
		if out.OverflowInt(i) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetInt(i)
	case isUintKind(a.t.Kind()):
		if i < 0 || out.OverflowUint(uint64(i)) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetUint(uint64(i))
	default:
		out.SetFloat(float64(i))
	}
	return out.Interface(), nil
}

func (a numberAdapter) fromUint(u uint64, raw any) (any, error) {
	out := reflect.New(a.t).Elem()
	switch {
	case isIntKind(a.t.Kind()):
		if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetInt(int64(u))
	case isUintKind(a.t.Kind()):
		if out.OverflowUint(u) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetUint(u)
	default:
		out.SetFloat(float64(u))
	}
	return out.Interface(), nil
}

func (a numberAdapter) fromFloat(f float64, raw any) (any, error) {
	out := reflect.New(a.t).Elem()
	switch {
	case isIntKind(a.t.Kind()):
		if !utils.IsIntegral(f) || !utils.IsInRange(float64(math.MinInt64), f, float64(math.MaxInt64)) {
			return nil, conversionErr(a.t.String(), raw, "not an integral value in range")
		}
		if out.OverflowInt(int64(f)) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetInt(int64(f))
	case isUintKind(a.t.Kind()):
		if f < 0 || !utils.IsIntegral(f) || !utils.IsInRange(0, f, float64(math.MaxUint64)) {
			return nil, conversionErr(a.t.String(), raw, "not an integral value in range")
		}
		if out.OverflowUint(uint64(f)) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetUint(uint64(f))
	default:
		if out.OverflowFloat(f) {
			return nil, conversionErr(a.t.String(), raw, "value out of range")
		}
		out.SetFloat(f)
	}
	return out.Interface(), nil
}

func (a numberAdapter) fromString(s string, raw any) (any, error) {
	switch {
	case isIntKind(a.t.Kind()):
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, conversionErr(a.t.String(), raw, err.Error())
		}
		return a.fromInt(i, raw)
	case isUintKind(a.t.Kind()):
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, conversionErr(a.t.String(), raw, err.Error())
		}
		return a.fromUint(u, raw)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, conversionErr(a.t.String(), raw, err.Error())
		}
		return a.fromFloat(f, raw)
	}
}

type bytesAdapter struct {
	t reflect.Type
}

func (a bytesAdapter) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []byte:
		return a.typed(v), nil
	case string:
		return a.typed([]byte(v)), nil
	}
	return nil, conversionErr(a.t.String(), raw, "")
}

func (a bytesAdapter) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, nil
	}
	return rv.Convert(reflect.TypeFor[[]byte]()).Interface(), nil
}

func (a bytesAdapter) typed(b []byte) any {
	return reflect.ValueOf(b).Convert(a.t).Interface()
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func builtinNumeric(k reflect.Kind) reflect.Type {
	switch k {
	default:
		return reflect.TypeFor[float64]()
	case reflect.Int:
		return reflect.TypeFor[int]()
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64:
		return reflect.TypeFor[int64]()
	case reflect.Uint:
		return reflect.TypeFor[uint]()
	case reflect.Uint8:
		return reflect.TypeFor[uint8]()
	case reflect.Uint16:
		return reflect.TypeFor[uint16]()
	case reflect.Uint32:
		return reflect.TypeFor[uint32]()
	case reflect.Uint64:
		return reflect.TypeFor[uint64]()
	case reflect.Float32:
		return reflect.TypeFor[float32]()
	}
}
