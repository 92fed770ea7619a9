package binding

// AdapterOf builds an Adapter from a typed read/write function pair, the
// convenient form for registering one-off custom adapters:
//
//	binding.RegisterAdapterFor[Money](b, binding.AdapterOf(
//		func(raw any) (Money, error) { ... },
//		func(v Money) (any, error) { ... },
//	))
//
// Both functions see nil passed through untouched, matching the built-in
// adapters' nil behavior.
func AdapterOf[T any](read func(raw any) (T, error), write func(v T) (any, error)) Adapter {
	if read == nil || write == nil {
		panic("binding: AdapterOf needs both a read and a write function")
	}
	return funcAdapter[T]{read: read, write: write}
}

type funcAdapter[T any] struct {
	read  func(raw any) (T, error)
	write func(v T) (any, error)
}

func (a funcAdapter[T]) Read(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := a.read(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (a funcAdapter[T]) Write(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	t, ok := v.(T)
	if !ok {
		return nil, conversionErr("adapter value", v, "unexpected value type")
	}
	return a.write(t)
}
