// Package registry provides the tables that make the set of field
// types (and casters, distributions, output formats, preprocessing
// passes and config defaults) extensible.
//
// A Registry is made once, seeded with the built-ins (see
// types.Standard), optionally extended, and then used by Loaders.
// Registration is idempotent per name: the last registration wins.
// Nothing is ever removed.
//
// A Registry is not safe for concurrent use.  Register everything
// before compiling any spec.
package registry

import (
	"fmt"

	"github.com/Comcast/datagen/core"
)

// Table names a registry table.
type Table string

const (
	Types         Table = "types"
	Schemas       Table = "schemas"
	Usage         Table = "usage"
	Formats       Table = "formats"
	Distributions Table = "distributions"
	Casters       Table = "casters"
	Preprocessors Table = "preprocessors"
	Defaults      Table = "defaults"
)

// Extension registers third-party things.
type Extension func(r *Registry) error

// Registry maps names to constructors and friends.
type Registry struct {
	types         *table[core.Constructor]
	schemas       *table[core.SchemaLoader]
	usage         *table[core.UsageFunc]
	formats       *table[core.Formatter]
	distributions *table[core.DistributionFactory]
	casters       *table[core.CasterFactory]
	preprocessors *table[core.Pass]
	defaults      *table[interface{}]

	extensions *table[Extension]
	loaded     map[string]bool
}

// New makes an empty Registry.
func New() *Registry {
	return &Registry{
		types:         newTable[core.Constructor](),
		schemas:       newTable[core.SchemaLoader](),
		usage:         newTable[core.UsageFunc](),
		formats:       newTable[core.Formatter](),
		distributions: newTable[core.DistributionFactory](),
		casters:       newTable[core.CasterFactory](),
		preprocessors: newTable[core.Pass](),
		defaults:      newTable[interface{}](),
		extensions:    newTable[Extension](),
		loaded:        make(map[string]bool),
	}
}

// RegisterType registers a type's Constructor.
func (r *Registry) RegisterType(name string, c core.Constructor) {
	r.types.register(name, c)
}

// RegisterSchema registers a type's JSON Schema loader.
func (r *Registry) RegisterSchema(name string, s core.SchemaLoader) {
	r.schemas.register(name, s)
}

// RegisterUsage registers a type's usage.
func (r *Registry) RegisterUsage(name string, u core.UsageFunc) {
	r.usage.register(name, u)
}

// RegisterFormat registers an output format.
func (r *Registry) RegisterFormat(name string, f core.Formatter) {
	r.formats.register(name, f)
}

// RegisterDistribution registers a numeric distribution.
func (r *Registry) RegisterDistribution(name string, f core.DistributionFactory) {
	r.distributions.register(name, f)
}

// RegisterCaster registers a cast operation.
func (r *Registry) RegisterCaster(name string, f core.CasterFactory) {
	r.casters.register(name, f)
}

// RegisterPreprocessor registers a preprocessing pass.  Passes run in
// the order of their (first) registration.
func (r *Registry) RegisterPreprocessor(name string, p core.Pass) {
	r.preprocessors.register(name, p)
}

// Constructor implements core.Registry.
func (r *Registry) Constructor(name string) (core.Constructor, bool) {
	return r.types.lookup(name)
}

// Schema returns a type's JSON Schema loader.
func (r *Registry) Schema(name string) (core.SchemaLoader, bool) {
	return r.schemas.lookup(name)
}

// UsageOf returns a type's usage.
func (r *Registry) UsageOf(name string) (core.UsageFunc, bool) {
	return r.usage.lookup(name)
}

// Format returns an output format.
func (r *Registry) Format(name string) (core.Formatter, bool) {
	return r.formats.lookup(name)
}

// Distribution implements core.Registry.
func (r *Registry) Distribution(name string) (core.DistributionFactory, bool) {
	return r.distributions.lookup(name)
}

// Caster implements core.Registry.
func (r *Registry) Caster(name string) (core.CasterFactory, bool) {
	return r.casters.lookup(name)
}

// Preprocessor returns a preprocessing pass.
func (r *Registry) Preprocessor(name string) (core.Pass, bool) {
	return r.preprocessors.lookup(name)
}

// SetDefault sets (or overrides) a config default.
func (r *Registry) SetDefault(name string, value interface{}) {
	r.defaults.register(name, value)
}

// Default implements core.Registry.  An unknown name is a
// ConfigurationError.
func (r *Registry) Default(name string) (interface{}, error) {
	x, have := r.defaults.lookup(name)
	if !have {
		return nil, core.Configf("no default named %q", name)
	}
	return x, nil
}

// Names returns the names in the given table in registration order.
func (r *Registry) Names(t Table) []string {
	switch t {
	case Types:
		return r.types.all()
	case Schemas:
		return r.schemas.all()
	case Usage:
		return r.usage.all()
	case Formats:
		return r.formats.all()
	case Distributions:
		return r.distributions.all()
	case Casters:
		return r.casters.all()
	case Preprocessors:
		return r.preprocessors.all()
	case Defaults:
		return r.defaults.all()
	default:
		return nil
	}
}

// AddExtension queues third-party registration code, which will run
// at the next LoadExtensions.
func (r *Registry) AddExtension(name string, x Extension) {
	r.extensions.register(name, x)
}

// LoadExtensions runs each queued Extension that hasn't run yet.
//
// Loaders call this method before compiling a spec.
func (r *Registry) LoadExtensions() error {
	for _, name := range r.extensions.all() {
		if r.loaded[name] {
			continue
		}
		x, _ := r.extensions.lookup(name)
		r.loaded[name] = true
		if err := x(r); err != nil {
			return fmt.Errorf("extension %s: %w", name, err)
		}
	}
	return nil
}
