package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Comcast/datagen/core"
)

func constant(x interface{}) core.Constructor {
	return func(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
		return core.SupplierFunc(func(int) (interface{}, error) {
			return x, nil
		}), nil
	}
}

func TestRegisterLastWins(t *testing.T) {
	r := New()
	r.RegisterType("a", constant(1))
	r.RegisterType("b", constant(2))
	r.RegisterType("a", constant(3))

	c, have := r.Constructor("a")
	if !have {
		t.Fatal("type a not found")
	}
	s, err := c(&core.FieldSpec{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	x, err := s.Next(0)
	if err != nil {
		t.Fatal(err)
	}
	if x != 3 {
		t.Fatalf("got %v; wanted the last registration", x)
	}

	if names := r.Names(Types); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("names %v", names)
	}

	if _, have := r.Constructor("c"); have {
		t.Fatal("found c")
	}
}

func TestDefaults(t *testing.T) {
	r := New()
	r.SetDefault("csv_buffer_size", 1000)

	x, err := r.Default("csv_buffer_size")
	if err != nil {
		t.Fatal(err)
	}
	if x != 1000 {
		t.Fatalf("got %v", x)
	}

	r.SetDefault("csv_buffer_size", 20)
	if x, _ = r.Default("csv_buffer_size"); x != 20 {
		t.Fatalf("override failed: %v", x)
	}

	_, err = r.Default("nope")
	if !core.IsConfigurationError(err) {
		t.Fatalf("wanted a ConfigurationError, not %v", err)
	}
}

func TestLoadExtensionsOnce(t *testing.T) {
	r := New()
	calls := 0
	r.AddExtension("ext", func(r *Registry) error {
		calls++
		r.RegisterType("ext_type", constant("x"))
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := r.LoadExtensions(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("extension ran %d times", calls)
	}
	if _, have := r.Constructor("ext_type"); !have {
		t.Fatal("extension type not registered")
	}
}

func TestLoadExtensionsError(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.AddExtension("bad", func(r *Registry) error {
		return boom
	})
	if err := r.LoadExtensions(); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestNamesUnknownTable(t *testing.T) {
	if names := New().Names(Table("stuff")); names != nil {
		t.Fatal(names)
	}
}
