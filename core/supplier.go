package core

import (
	"context"
)

// Supplier produces the value for a field at a given iteration.
//
// Most Suppliers are functions of the iteration plus some
// randomness.  Some (buffered suppliers, chunked CSV suppliers,
// CombineList) carry state that assumes the iterations they are given
// never decrease.  Callers must request iterations in non-decreasing
// order; a Supplier that cannot serve an out-of-order request returns
// a RuntimeError.
type Supplier interface {
	Next(iteration int) (interface{}, error)
}

// SupplierFunc makes a function into a Supplier.
type SupplierFunc func(iteration int) (interface{}, error)

// Next calls f.
func (f SupplierFunc) Next(iteration int) (interface{}, error) {
	return f(iteration)
}

// Ordered is a Supplier whose objects have a KeyOrder.
type Ordered interface {
	KeyOrder() *KeyOrder
}

// CountHandler is implemented by Suppliers that already honor a
// "count" config, so the alteration pipeline doesn't wrap them again.
type CountHandler interface {
	HandlesCount() bool
}

// Loader resolves field and ref names to Suppliers.
//
// Type constructors get the Loader so that they can resolve the
// fields and refs they depend on.
type Loader interface {
	// Get returns the (cached) Supplier for the given field or
	// ref name.
	Get(key string) (Supplier, error)

	// GetFromSpec builds a Supplier from a raw Field Spec (or a
	// bare list, scalar or weighted mapping).
	GetFromSpec(x interface{}) (Supplier, error)

	// GetRef returns the Field Spec of the named ref.
	GetRef(key string) (*FieldSpec, error)

	// Has reports whether the name is a field or a ref.
	Has(key string) bool

	// Config returns the effective Config of a Field Spec,
	// including any config_ref indirection.
	Config(fs *FieldSpec) Config

	// Registry gives access to casters, distributions and
	// defaults.
	Registry() Registry

	// DataDir is the directory relative file names (CSV files)
	// are resolved against.
	DataDir() string
}

// Registry is the part of the registry that type constructors see.
type Registry interface {
	Constructor(name string) (Constructor, bool)
	Caster(name string) (CasterFactory, bool)
	Distribution(name string) (DistributionFactory, bool)
	Default(name string) (interface{}, error)
}

// Constructor builds a Supplier for a Field Spec of a given type.
type Constructor func(fs *FieldSpec, l Loader) (Supplier, error)

// SchemaLoader returns the JSON Schema document for a type.
type SchemaLoader func() (interface{}, error)

// UsageFunc returns human-readable (markdown) usage for a type.
type UsageFunc func() string

// Pass is one preprocessing step.  A Pass must not modify its
// argument.
type Pass func(spec *Spec) (*Spec, error)

// Formatter renders a Record.
type Formatter func(r *Record) ([]byte, error)

// Caster converts a value.
type Caster interface {
	Cast(x interface{}) (interface{}, error)
}

// CasterFunc makes a function into a Caster.
type CasterFunc func(x interface{}) (interface{}, error)

// Cast calls f.
func (f CasterFunc) Cast(x interface{}) (interface{}, error) {
	return f(x)
}

// CasterFactory makes a Caster.  The argument is the numeric suffix
// of a parameterized caster name ("5" for "zfill5"), or "" if there
// is none.
type CasterFactory func(arg string) (Caster, error)

// Distribution produces numbers.
type Distribution interface {
	Next() float64
}

// DistributionFactory makes a Distribution from keyword parameters.
type DistributionFactory func(params map[string]float64) (Distribution, error)

// Interpreter can compile and execute expressions for calculated
// fields.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code string) (interface{}, error)

	// Exec evaluates the compiled code with the given variables
	// in scope.
	Exec(ctx context.Context, vars map[string]interface{}, compiled interface{}) (interface{}, error)
}
