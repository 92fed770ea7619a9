package binding

import (
	"reflect"
)

// Builder configures and builds a Binder. All configuration happens here;
// the resulting Binder never changes after Build.
//
//	binder := binding.NewBuilder().
//		Naming(binding.LowerUnderscore).
//		RegisterFactory(moneyFactory).
//		Build()
type Builder struct {
	userFactories []Factory
	naming        NamingPolicy
	coercions     Coercion
	enums         map[reflect.Type]*enumSpec
	legacyTags    bool
}

func NewBuilder() *Builder {
	return &Builder{
		naming:     Identity,
		coercions:  CoerceAll,
		enums:      make(map[reflect.Type]*enumSpec),
		legacyTags: true,
	}
}

// RegisterFactory appends a user factory. User factories are consulted before
// the built-ins, in registration order.
func (b *Builder) RegisterFactory(f Factory) *Builder {
	if f == nil {
		panic("binding: nil factory registered")
	}
	b.userFactories = append(b.userFactories, f)
	return b
}

// RegisterAdapter registers an adapter for one exact type. Registered
// adapters take priority over every built-in.
func (b *Builder) RegisterAdapter(t reflect.Type, a Adapter) *Builder {
	if t == nil || a == nil {
		panic("binding: nil type or adapter registered")
	}
	return b.RegisterFactory(FactoryFunc(func(_ *Resolver, requested reflect.Type) (Adapter, error) {
		if requested == t {
			return a, nil
		}
		return nil, nil
	}))
}

// RegisterAdapterFor is the generic form of RegisterAdapter.
func RegisterAdapterFor[T any](b *Builder, a Adapter) *Builder {
	return b.RegisterAdapter(reflect.TypeFor[T](), a)
}

// RegisterEnum registers the value set of an enum type E. Names are taken
// from fmt.Stringer when E implements it, otherwise from the underlying
// string value; a type with neither is rejected. Registration replaces any
// earlier set for the same type.
func RegisterEnum[E comparable](b *Builder, values ...E) *Builder {
	spec, err := newEnumSpec(values)
	if err != nil {
		panic("binding: " + err.Error())
	}
	b.enums[reflect.TypeFor[E]()] = spec
	return b
}

// Naming sets the naming policy used when a member tag carries no explicit
// field name. Defaults to Identity.
func (b *Builder) Naming(p NamingPolicy) *Builder {
	if p == nil {
		panic("binding: nil naming policy")
	}
	b.naming = p
	return b
}

// Coercions selects which lenient raw forms the built-in adapters accept.
// Defaults to CoerceAll.
func (b *Builder) Coercions(c Coercion) *Builder {
	b.coercions = c
	return b
}

// LegacyTags enables or disables the lowest-priority factory that reads the
// legacy `field` struct tag. Enabled by default.
func (b *Builder) LegacyTags(enabled bool) *Builder {
	b.legacyTags = enabled
	return b
}

// Build assembles the factory chain and returns the finished Binder. The
// built-in order is fixed: enums, temporals, scalars, then containers, then
// the reflective struct factory, with the legacy-tag factory last.
func (b *Builder) Build() *Binder {
	factories := make([]Factory, 0, len(b.userFactories)+10)
	factories = append(factories, b.userFactories...)
	factories = append(factories,
		FactoryFunc(enumFactory),
		FactoryFunc(timeFactory),
		FactoryFunc(scalarFactory),
		FactoryFunc(sliceFactory),
		FactoryFunc(arrayFactory),
		FactoryFunc(setFactory),
		FactoryFunc(mapFactory),
		FactoryFunc(optionalFactory),
		FactoryFunc(pointerFactory),
		newStructFactory(primaryTags),
	)
	if b.legacyTags {
		factories = append(factories, newStructFactory(legacyOnlyTags))
	}

	enums := make(map[reflect.Type]*enumSpec, len(b.enums))
	for t, spec := range b.enums {
		enums[t] = spec
	}

	return &Binder{
		factories: factories,
		naming:    b.naming,
		coercions: b.coercions,
		enums:     enums,
		cache:     make(map[reflect.Type]Adapter),
	}
}
