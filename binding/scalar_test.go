package binding_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solr-binder/binding"
)

func TestStringAdapter(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()
	a, err := binding.AdapterFor[string](b)
	require.NoError(t, err)

	t.Run("read", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			raw  any
			want any
		}{
			{"hello", "hello"},
			{[]byte("blob"), "blob"},
			{42, "42"},
			{true, "true"},
		}
		for _, tc := range cases {
			got, err := a.Read(tc.raw)
			require.NoError(t, err, "raw %#v", tc.raw)
			assert.Equal(t, tc.want, got)
		}

		got, err := a.Read(nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = a.Read([]any{1, 2})
		assert.ErrorIs(t, err, binding.ErrConversion)
	})

	t.Run("named string type", func(t *testing.T) {
		t.Parallel()

		type sku string
		na, err := b.Adapter(reflect.TypeFor[sku]())
		require.NoError(t, err)

		got, err := na.Read("abc-1")
		require.NoError(t, err)
		assert.Equal(t, sku("abc-1"), got)

		raw, err := na.Write(sku("abc-1"))
		require.NoError(t, err)
		assert.Equal(t, "abc-1", raw)
	})
}

func TestBoolAdapter(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()
	a, err := binding.AdapterFor[bool](b)
	require.NoError(t, err)

	cases := []struct {
		raw  any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"false", false},
		{1, true},
		{int64(0), false},
		{uint8(3), true},
		{0.0, false},
	}
	for _, tc := range cases {
		got, err := a.Read(tc.raw)
		require.NoError(t, err, "raw %#v", tc.raw)
		assert.Equal(t, tc.want, got)
	}

	_, err = a.Read("maybe")
	assert.ErrorIs(t, err, binding.ErrConversion)

	t.Run("coercions off", func(t *testing.T) {
		t.Parallel()

		strict := binding.NewBuilder().Coercions(binding.CoerceNone).Build()
		sa, err := binding.AdapterFor[bool](strict)
		require.NoError(t, err)

		got, err := sa.Read(true)
		require.NoError(t, err)
		assert.Equal(t, true, got)

		_, err = sa.Read("true")
		assert.ErrorIs(t, err, binding.ErrConversion)
		_, err = sa.Read(1)
		assert.ErrorIs(t, err, binding.ErrConversion)
	})
}

func TestNumberAdapter(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()

	t.Run("exact typing", func(t *testing.T) {
		t.Parallel()

		a, err := binding.AdapterFor[int32](b)
		require.NoError(t, err)

		got, err := a.Read(int64(7))
		require.NoError(t, err)
		assert.Equal(t, int32(7), got)

		got, err = a.Read(7.0)
		require.NoError(t, err)
		assert.Equal(t, int32(7), got)

		got, err = a.Read("7")
		require.NoError(t, err)
		assert.Equal(t, int32(7), got)
	})

	t.Run("overflow and fraction", func(t *testing.T) {
		t.Parallel()

		a, err := binding.AdapterFor[int8](b)
		require.NoError(t, err)

		_, err = a.Read(300)
		assert.ErrorIs(t, err, binding.ErrConversion)

		_, err = a.Read(1.5)
		assert.ErrorIs(t, err, binding.ErrConversion)

		ua, err := binding.AdapterFor[uint16](b)
		require.NoError(t, err)

		_, err = ua.Read(-1)
		assert.ErrorIs(t, err, binding.ErrConversion)

		got, err := ua.Read(65535)
		require.NoError(t, err)
		assert.Equal(t, uint16(65535), got)
	})

	t.Run("floats", func(t *testing.T) {
		t.Parallel()

		a, err := binding.AdapterFor[float64](b)
		require.NoError(t, err)

		got, err := a.Read(19.99)
		require.NoError(t, err)
		assert.Equal(t, 19.99, got)

		got, err = a.Read(int32(5))
		require.NoError(t, err)
		assert.Equal(t, 5.0, got)

		got, err = a.Read("19.99")
		require.NoError(t, err)
		assert.Equal(t, 19.99, got)

		_, err = a.Read("not a number")
		assert.ErrorIs(t, err, binding.ErrConversion)
	})

	t.Run("text coercion off", func(t *testing.T) {
		t.Parallel()

		strict := binding.NewBuilder().Coercions(binding.CoerceNone).Build()
		a, err := binding.AdapterFor[int](strict)
		require.NoError(t, err)

		_, err = a.Read("42")
		assert.ErrorIs(t, err, binding.ErrConversion)

		got, err := a.Read(int64(42))
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("write normalizes named types", func(t *testing.T) {
		t.Parallel()

		type count int32
		a, err := binding.AdapterFor[count](b)
		require.NoError(t, err)

		raw, err := a.Write(count(9))
		require.NoError(t, err)
		assert.Equal(t, int32(9), raw)
	})
}

func TestBytesAdapter(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()
	a, err := binding.AdapterFor[[]byte](b)
	require.NoError(t, err)

	got, err := a.Read([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got, err = a.Read("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = a.Read(42)
	assert.ErrorIs(t, err, binding.ErrConversion)

	raw, err := a.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)
}

func TestAnyPassThrough(t *testing.T) {
	t.Parallel()

	b := binding.NewBuilder().Build()
	a, err := binding.AdapterFor[any](b)
	require.NoError(t, err)

	got, err := a.Read("anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", got)

	raw, err := a.Write(42)
	require.NoError(t, err)
	assert.Equal(t, 42, raw)
}
