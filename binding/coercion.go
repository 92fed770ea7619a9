package binding

// Coercion is a bitmask selecting which lenient raw forms the built-in
// adapters accept on read. The canonical form of every kind is always
// accepted; coercions only widen the set of inputs, never change what gets
// written.
type Coercion int

const (
	CoerceTextNumber  Coercion = 1 << iota // string <-> number: numeric strings parsed into number fields
	CoerceNumericBool                      // number -> bool: zero is false, anything else is true
	CoerceTextualBool                      // string -> bool: "true"/"false" parsed into bool fields
	CoerceEpochMillis                      // number -> time.Time: integer milliseconds since the Unix epoch
	CoerceTextTime                         // string -> time.Time: ISO-8601 (RFC 3339) timestamps
	CoerceEnumOrdinal                      // number -> enum: the constant's underlying integer value
	CoerceScalarList                       // scalar -> list: bare scalar read as a one-element collection

	CoerceAll  = (1 << iota) - 1 // all coercions combined
	CoerceNone = 0               // canonical forms only
)

func (c Coercion) allows(flag Coercion) bool { return c&flag != 0 }
