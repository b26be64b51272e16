package registry

// table is a mapping that remembers the order of first
// registration.
type table[T any] struct {
	names []string
	m     map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{
		m: make(map[string]T),
	}
}

func (t *table[T]) register(name string, x T) {
	if _, have := t.m[name]; !have {
		t.names = append(t.names, name)
	}
	t.m[name] = x
}

func (t *table[T]) lookup(name string) (T, bool) {
	x, have := t.m[name]
	return x, have
}

func (t *table[T]) all() []string {
	return append([]string(nil), t.names...)
}
