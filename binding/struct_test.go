package binding_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solr-binder/binding"
	"solr-binder/document"
)

type product struct {
	ID    string  `solr:"id"`
	Name  string  `solr:"name"`
	Price float64 `solr:"price"`
}

func TestProductRoundTrip(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	doc := document.New()
	doc.SetField("id", "p1")
	doc.SetField("name", "Solr in Action")
	doc.SetField("price", 19.99)

	got, err := binding.FromDocument[product](b, doc)
	require.NoError(t, err)
	assert.Equal(t, product{ID: "p1", Name: "Solr in Action", Price: 19.99}, got, spew.Sdump(doc))

	out, err := b.ToDocument(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "price"}, out.FieldNames())

	v, _ := out.Get("price")
	assert.Equal(t, 19.99, v)

	t.Run("absent field keeps the zero value", func(t *testing.T) {
		t.Parallel()

		short := document.New()
		short.SetField("id", "p2")

		got, err := binding.FromDocument[product](b, short)
		require.NoError(t, err)
		assert.Equal(t, product{ID: "p2"}, got)
	})

	t.Run("lenient member coercion", func(t *testing.T) {
		t.Parallel()

		loose := document.New()
		loose.SetField("id", "p3")
		loose.SetField("price", "19.99")

		got, err := binding.FromDocument[product](b, loose)
		require.NoError(t, err)
		assert.Equal(t, 19.99, got.Price)
	})

	t.Run("member errors name the member", func(t *testing.T) {
		t.Parallel()

		bad := document.New()
		bad.SetField("id", "p4")
		bad.SetField("price", "not a price")

		_, err := binding.FromDocument[product](b, bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, binding.ErrConversion)
		assert.Contains(t, err.Error(), "Price")
	})

	t.Run("raw value that is not a document", func(t *testing.T) {
		t.Parallel()

		a, err := binding.AdapterFor[product](b)
		require.NoError(t, err)
		_, err = a.Read("not a document")
		assert.ErrorIs(t, err, binding.ErrConversion)
	})
}

type variant struct {
	SKU   string  `solr:"sku"`
	Price float64 `solr:"price"`
}

type listing struct {
	ID       string    `solr:"id"`
	Variants []variant `solr:"variants,nested"`
}

func TestNestedChildren(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	t.Run("absent stays nil, explicit empty stays empty", func(t *testing.T) {
		t.Parallel()

		absent := document.New()
		absent.SetField("id", "l1")

		got, err := binding.FromDocument[listing](b, absent)
		require.NoError(t, err)
		assert.Nil(t, got.Variants)

		empty := document.New()
		empty.SetField("id", "l2")
		empty.SetField("variants", []any{})

		got, err = binding.FromDocument[listing](b, empty)
		require.NoError(t, err)
		assert.NotNil(t, got.Variants)
		assert.Empty(t, got.Variants)
	})

	t.Run("children populate the plural member", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "l3")
		child := document.New()
		child.SetField("sku", "v1")
		child.SetField("price", 9.99)
		doc.AddChild(child)

		got, err := binding.FromDocument[listing](b, doc)
		require.NoError(t, err)
		assert.Equal(t, []variant{{SKU: "v1", Price: 9.99}}, got.Variants)
	})

	t.Run("named field value wins over children", func(t *testing.T) {
		t.Parallel()

		inline := document.New()
		inline.SetField("sku", "inline")

		stray := document.New()
		stray.SetField("sku", "stray")

		doc := document.New()
		doc.SetField("id", "l4")
		doc.SetField("variants", []*document.Document{inline})
		doc.AddChild(stray)

		got, err := binding.FromDocument[listing](b, doc)
		require.NoError(t, err)
		require.Len(t, got.Variants, 1)
		assert.Equal(t, "inline", got.Variants[0].SKU)
	})

	t.Run("write emits child documents", func(t *testing.T) {
		t.Parallel()

		out, err := b.ToDocument(listing{
			ID:       "l5",
			Variants: []variant{{SKU: "v1", Price: 9.99}, {SKU: "v2", Price: 14.99}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, out.FieldNames())

		children := out.Children()
		require.Len(t, children, 2)
		sku, _ := children[0].Get("sku")
		assert.Equal(t, "v1", sku)
		sku, _ = children[1].Get("sku")
		assert.Equal(t, "v2", sku)
	})

	t.Run("nil plural member writes nothing", func(t *testing.T) {
		t.Parallel()

		out, err := b.ToDocument(listing{ID: "l6"})
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, out.FieldNames())
		assert.Empty(t, out.Children())
	})
}

type person struct {
	Name string `solr:"name"`
}

type profile struct {
	ID    string  `solr:"id"`
	Owner *person `solr:"owner,nested"`
}

func TestNestedSingular(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	doc := document.New()
	doc.SetField("id", "pr1")
	owner := document.New()
	owner.SetField("name", "Ada")
	doc.AddChild(owner)

	got, err := binding.FromDocument[profile](b, doc)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "Ada", got.Owner.Name)

	out, err := b.ToDocument(got)
	require.NoError(t, err)
	require.Len(t, out.Children(), 1)
	name, _ := out.Children()[0].Get("name")
	assert.Equal(t, "Ada", name)

	t.Run("absent child leaves a nil pointer", func(t *testing.T) {
		t.Parallel()

		bare := document.New()
		bare.SetField("id", "pr2")

		got, err := binding.FromDocument[profile](b, bare)
		require.NoError(t, err)
		assert.Nil(t, got.Owner)
	})
}

type item struct {
	ID    string         `solr:"id"`
	Attrs map[string]any `solr:"attrs"`
}

func TestDynamicFieldGroup(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	t.Run("write spreads entries as top-level fields", func(t *testing.T) {
		t.Parallel()

		out, err := b.ToDocument(item{
			ID:    "i1",
			Attrs: map[string]any{"weight": 2.5, "size": "L"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "size", "weight"}, out.FieldNames())

		size, ok := out.Get("size")
		assert.True(t, ok)
		assert.Equal(t, "L", size)

		_, ok = out.Get("attrs")
		assert.False(t, ok)
	})

	t.Run("read takes the named field", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "i2")
		doc.SetField("attrs", map[string]any{"size": "M"})

		got, err := binding.FromDocument[item](b, doc)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"size": "M"}, got.Attrs)
	})
}

type baseDoc struct {
	ID   string `solr:"id"`
	Name string `solr:"name"`
}

type extendedDoc struct {
	baseDoc
	Name string `solr:"display_name"`
}

func TestEmbeddedShadowing(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	doc := document.New()
	doc.SetField("id", "e1")
	doc.SetField("name", "ignored")
	doc.SetField("display_name", "Widget")

	got, err := binding.FromDocument[extendedDoc](b, doc)
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, "Widget", got.Name)
	assert.Empty(t, got.baseDoc.Name)

	out, err := b.ToDocument(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"display_name", "id"}, out.FieldNames())
}

type counter struct {
	ID    string `solr:"id"`
	total int
}

func (c *counter) SetTotal(v int) { c.total = v }
func (c *counter) Total() int     { return c.total }

type sink struct {
	ID     string `solr:"id"`
	secret string
}

func (s *sink) SetSecret(v string) { s.secret = v }

type gadget struct {
	ID string `solr:"id"`
}

func (g *gadget) Settle(int)        {}
func (g *gadget) Settings(s string) {}
func (g *gadget) SetupWith(n int)   {}

func TestSetterBoundMembers(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	t.Run("setter and getter round trip", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "c1")
		doc.SetField("Total", 5)

		got, err := binding.FromDocument[counter](b, doc)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Total())

		out, err := b.ToDocument(got)
		require.NoError(t, err)
		total, ok := out.Get("Total")
		assert.True(t, ok)
		assert.Equal(t, 5, total)
	})

	t.Run("absent field leaves the setter untouched", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "c2")

		got, err := binding.FromDocument[counter](b, doc)
		require.NoError(t, err)
		assert.Zero(t, got.Total())
	})

	t.Run("setter without getter still reads", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "s1")
		doc.SetField("Secret", "hush")

		_, err := binding.FromDocument[sink](b, doc)
		require.NoError(t, err)
	})

	t.Run("setter without getter fails on write", func(t *testing.T) {
		t.Parallel()

		_, err := b.ToDocument(sink{ID: "s2"})
		require.Error(t, err)
		assert.ErrorIs(t, err, binding.ErrConfiguration)
		assert.Contains(t, err.Error(), "Secret")
	})

	t.Run("helper methods with a Set prefix are not setters", func(t *testing.T) {
		t.Parallel()

		out, err := b.ToDocument(gadget{ID: "g1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, out.FieldNames())

		doc := document.New()
		doc.SetField("id", "g2")
		doc.SetField("tle", 1)
		doc.SetField("upWith", 2)

		got, err := binding.FromDocument[gadget](b, doc)
		require.NoError(t, err)
		assert.Equal(t, "g2", got.ID)
	})
}

type described struct {
	ID     string                   `solr:"id"`
	Desc   binding.Optional[string] `solr:"desc"`
	Rating *float64                 `solr:"rating"`
}

func TestOptionalMembers(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	t.Run("absent reads as none", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "d1")

		got, err := binding.FromDocument[described](b, doc)
		require.NoError(t, err)
		assert.False(t, got.Desc.IsPresent())
		assert.Nil(t, got.Rating)
		assert.Equal(t, "fallback", got.Desc.OrElse("fallback"))
	})

	t.Run("present reads as some", func(t *testing.T) {
		t.Parallel()

		doc := document.New()
		doc.SetField("id", "d2")
		doc.SetField("desc", "short text")
		doc.SetField("rating", 4.5)

		got, err := binding.FromDocument[described](b, doc)
		require.NoError(t, err)

		v, ok := got.Desc.Get()
		assert.True(t, ok)
		assert.Equal(t, "short text", v)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 4.5, *got.Rating)
	})

	t.Run("none writes no field", func(t *testing.T) {
		t.Parallel()

		out, err := b.ToDocument(described{ID: "d3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, out.FieldNames())
	})

	t.Run("some writes the inner value", func(t *testing.T) {
		t.Parallel()

		rating := 4.5
		out, err := b.ToDocument(described{
			ID:     "d4",
			Desc:   binding.Some("short text"),
			Rating: &rating,
		})
		require.NoError(t, err)

		desc, _ := out.Get("desc")
		assert.Equal(t, "short text", desc)
		r, _ := out.Get("rating")
		assert.Equal(t, 4.5, r)
	})
}

type category struct {
	Name   string    `solr:"name"`
	Parent *category `solr:"parent,nested"`
}

func TestSelfReferentialType(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	a, err := binding.AdapterFor[category](b)
	require.NoError(t, err)
	require.NotNil(t, a)

	doc := document.New()
	doc.SetField("name", "leaf")
	parent := document.New()
	parent.SetField("name", "root")
	doc.AddChild(parent)

	got, err := binding.FromDocument[category](b, doc)
	require.NoError(t, err)
	assert.Equal(t, "leaf", got.Name)
	require.NotNil(t, got.Parent)
	assert.Equal(t, "root", got.Parent.Name)
	assert.Nil(t, got.Parent.Parent)

	out, err := b.ToDocument(got)
	require.NoError(t, err)
	require.Len(t, out.Children(), 1)
	name, _ := out.Children()[0].Get("name")
	assert.Equal(t, "root", name)
}

type renamed struct {
	EventID   string `solr:"#default"`
	CreatedAt string `solr:""`
	Explicit  string `solr:"kept_name"`
}

func TestNamingPolicyApplies(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Naming(binding.LowerUnderscore).Build()

	out, err := b.ToDocument(renamed{EventID: "e", CreatedAt: "c", Explicit: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"event_i_d", "created_at", "kept_name"}, out.FieldNames())
}

type withSkips struct {
	ID       string `solr:"id"`
	Internal string `solr:"-"`
	Plain    string
}

func TestUntaggedAndSkippedMembers(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	out, err := b.ToDocument(withSkips{ID: "x", Internal: "hidden", Plain: "also hidden"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, out.FieldNames())

	t.Run("fully untagged struct resolves no adapter", func(t *testing.T) {
		t.Parallel()

		type plain struct {
			A string
			B int
		}
		_, err := binding.AdapterFor[plain](b)
		assert.ErrorIs(t, err, binding.ErrNoAdapter)
	})
}

type legacyDoc struct {
	ID    string   `field:"id"`
	Tags  []string `field:"tags"`
	Score float64  `field:"#default"`
}

type mixedTags struct {
	ID   string `solr:"id_s" field:"id_legacy"`
	Note string `field:"note"`
}

func TestLegacyTagSupport(t *testing.T) {
	t.Parallel()

	t.Run("legacy tags bind by default", func(t *testing.T) {
		t.Parallel()

		b := binding.NewBuilder().Naming(binding.LowerCase).Build()

		doc := document.New()
		doc.SetField("id", "lg1")
		doc.SetField("tags", []any{"a", "b"})
		doc.SetField("score", 0.5)

		got, err := binding.FromDocument[legacyDoc](b, doc)
		require.NoError(t, err)
		assert.Equal(t, legacyDoc{ID: "lg1", Tags: []string{"a", "b"}, Score: 0.5}, got)
	})

	t.Run("legacy tags can be disabled", func(t *testing.T) {
		t.Parallel()

		b := binding.NewBuilder().LegacyTags(false).Build()
		_, err := binding.AdapterFor[legacyDoc](b)
		assert.ErrorIs(t, err, binding.ErrNoAdapter)
	})

	t.Run("primary tag wins per member", func(t *testing.T) {
		t.Parallel()

		b := binding.NewBuilder().Build()

		out, err := b.ToDocument(mixedTags{ID: "m1", Note: "n"})
		require.NoError(t, err)
		assert.Equal(t, []string{"id_s", "note"}, out.FieldNames())

		doc := document.New()
		doc.SetField("id_s", "m2")
		doc.SetField("id_legacy", "ignored")
		doc.SetField("note", "kept")

		got, err := binding.FromDocument[mixedTags](b, doc)
		require.NoError(t, err)
		assert.Equal(t, mixedTags{ID: "m2", Note: "kept"}, got)
	})
}

type statusDoc struct {
	ID     string `solr:"id"`
	Status color  `solr:"status"`
}

func TestEnumMembers(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder()
	binding.RegisterEnum(b, colorRed, colorGreen, colorBlue)
	binder := b.Build()

	doc := document.New()
	doc.SetField("id", "st1")
	doc.SetField("status", "green")

	got, err := binding.FromDocument[statusDoc](binder, doc)
	require.NoError(t, err)
	assert.Equal(t, colorGreen, got.Status)

	out, err := binder.ToDocument(got)
	require.NoError(t, err)
	status, _ := out.Get("status")
	assert.Equal(t, "green", status)
}
