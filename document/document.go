// Package document holds the in-memory representation of Solr documents on
// both sides of the binding boundary: Document for results read back from the
// index, InputDocument for updates about to be sent to it. Field values are
// untyped; the binding package is responsible for coercing them.
package document

// Document is a bag of named field values as returned by a search query.
// A field value may be a scalar, a list of scalars, an embedded *Document, or
// a list of embedded documents. Child documents are kept separately from the
// named fields; a field being absent is distinct from a field holding an
// empty list.
type Document struct {
	fields map[string]any
	names  []string
	childs []*Document
}

func New() *Document {
	return &Document{fields: make(map[string]any)}
}

// SetField stores a field value, overwriting any previous value under the
// same name.
func (d *Document) SetField(name string, value any) {
	if _, exists := d.fields[name]; !exists {
		d.names = append(d.names, name)
	}
	d.fields[name] = value
}

// Get returns the value of a named field. The second result reports whether
// the field is present at all, so a present nil can be told apart from an
// absent field.
func (d *Document) Get(name string) (any, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// FieldNames returns the field names in insertion order.
func (d *Document) FieldNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Document) Len() int { return len(d.fields) }

// AddChild appends a child document. Children keep their insertion order.
func (d *Document) AddChild(c *Document) {
	d.childs = append(d.childs, c)
}

// Children returns the child documents, or nil if there are none.
func (d *Document) Children() []*Document {
	return d.childs
}

// InputDocument accumulates fields and child documents for an index update.
// The binding engine only ever writes to it; it is never read back during
// conversion.
type InputDocument struct {
	fields map[string]any
	names  []string
	childs []*InputDocument
}

func NewInput() *InputDocument {
	return &InputDocument{fields: make(map[string]any)}
}

// SetField stores a field value, overwriting any previous value under the
// same name.
func (d *InputDocument) SetField(name string, value any) {
	if _, exists := d.fields[name]; !exists {
		d.names = append(d.names, name)
	}
	d.fields[name] = value
}

// Get returns the value of a named field and whether it is present.
func (d *InputDocument) Get(name string) (any, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// FieldNames returns the field names in insertion order.
func (d *InputDocument) FieldNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *InputDocument) Len() int { return len(d.fields) }

// AddChild appends a child document, preserving insertion order.
func (d *InputDocument) AddChild(c *InputDocument) {
	d.childs = append(d.childs, c)
}

// Children returns the child documents, or nil if there are none.
func (d *InputDocument) Children() []*InputDocument {
	return d.childs
}
