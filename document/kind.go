package document

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a raw document value. It is coarser than reflect.Kind and
// is what conversion errors report, so messages stay in document vocabulary
// ("list", "document") instead of Go type names.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindNil
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindTime
	KindList
	KindMap
	KindDocument
	KindInputDocument
	KindOther

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsScalar() bool {
	switch k {
	default:
		return false
	case KindBool, KindInt, KindUint, KindFloat, KindString, KindBytes, KindTime:
		return true
	}
}

// KindOf reports the Kind of a raw value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNil
	case bool:
		return KindBool
	case string:
		return KindString
	case []byte:
		return KindBytes
	case time.Time:
		return KindTime
	case *Document, []*Document:
		if _, ok := v.([]*Document); ok {
			return KindList
		}
		return KindDocument
	case *InputDocument, []*InputDocument:
		if _, ok := v.([]*InputDocument); ok {
			return KindList
		}
		return KindInputDocument
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	default:
		return KindOther
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	}
}
