/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package loader compiles a spec into Suppliers.
//
// A Loader is made for one generation run.  It preprocesses the spec
// and then builds Suppliers lazily: the first Get for a name builds
// the Supplier, and later Gets return the same one.
package loader

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/keys"
	"github.com/Comcast/datagen/preprocess"
	"github.com/Comcast/datagen/registry"
	"github.com/Comcast/datagen/schemas"
	"github.com/Comcast/datagen/util"
)

// Names of registry defaults the Loader reads.
const (
	DataDirDefault    = "data_dir"
	StrictModeDefault = "strict_mode"
)

// configRefDepth limits chains of config_refs.
const configRefDepth = 16

// Validator checks a Field Spec (as a mapping) against its type's
// schema.
type Validator interface {
	Validate(typ string, fieldSpec map[string]interface{}) error
}

// Option configures a Loader.
type Option func(l *Loader)

// WithDataDir sets the directory relative CSV paths are resolved
// against.
func WithDataDir(dir string) Option {
	return func(l *Loader) {
		l.dataDir = dir
	}
}

// WithStrict turns schema validation of every Field Spec on or off.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = &strict
	}
}

// WithSchemas sets the Validator used in strict mode.
func WithSchemas(v Validator) Option {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader implements core.Loader.
//
// A Loader is not safe for concurrent use.
type Loader struct {
	spec *core.Spec
	reg  *registry.Registry

	dataDir   string
	strict    *bool
	validator Validator

	cache     map[string]core.Supplier
	resolving map[string]bool
}

// New loads extensions, preprocesses the spec and returns a Loader
// for the result.  The given spec is not modified.
func New(spec *core.Spec, reg *registry.Registry, opts ...Option) (*Loader, error) {
	if err := reg.LoadExtensions(); err != nil {
		return nil, err
	}
	canonical, err := preprocess.Run(reg, spec)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		spec:      canonical,
		reg:       reg,
		cache:     make(map[string]core.Supplier),
		resolving: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.dataDir == "" {
		if x, err := reg.Default(DataDirDefault); err == nil {
			l.dataDir = core.Stringify(x)
		}
	}
	if l.dataDir == "" {
		l.dataDir = "."
	}
	if l.strict == nil {
		strict := false
		if x, err := reg.Default(StrictModeDefault); err == nil {
			cfg := core.NewConfig(map[string]interface{}{StrictModeDefault: x}, nil)
			if strict, err = cfg.Bool(StrictModeDefault, false); err != nil {
				return nil, err
			}
		}
		l.strict = &strict
	}
	if *l.strict && l.validator == nil {
		l.validator = schemas.NewValidator(reg)
	}

	return l, nil
}

// Spec returns the canonical spec.
func (l *Loader) Spec() *core.Spec {
	return l.spec
}

// Registry implements core.Loader.
func (l *Loader) Registry() core.Registry {
	return l.reg
}

// DataDir implements core.Loader.
func (l *Loader) DataDir() string {
	return l.dataDir
}

// Path resolves a file name against the data directory.
func (l *Loader) Path(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(l.dataDir, filename)
}

// Strict reports whether Field Specs are validated against schemas.
func (l *Loader) Strict() bool {
	return *l.strict
}

// Get implements core.Loader.
func (l *Loader) Get(key string) (core.Supplier, error) {
	if s, have := l.cache[key]; have {
		return s, nil
	}
	x, have := l.spec.Lookup(key)
	if !have {
		return nil, core.KeyConfigf(key, "no key found")
	}
	if l.resolving[key] {
		return nil, core.KeyConfigf(key, "refers to itself")
	}

	l.resolving[key] = true
	s, err := l.GetFromSpec(x)
	delete(l.resolving, key)
	if err != nil {
		if core.IsConfigurationError(err) {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return nil, err
	}

	util.Logf("loader built %s: %T", key, s)
	l.cache[key] = s
	return s, nil
}

// Has implements core.Loader.
func (l *Loader) Has(key string) bool {
	_, have := l.spec.Lookup(key)
	return have
}

// GetRef implements core.Loader.
func (l *Loader) GetRef(key string) (*core.FieldSpec, error) {
	x, have := l.spec.Refs[key]
	if !have {
		return nil, core.KeyConfigf(key, "no ref found")
	}
	return core.AsFieldSpec(x)
}

// GetFromSpec implements core.Loader.
func (l *Loader) GetFromSpec(x interface{}) (core.Supplier, error) {
	fs, err := core.AsFieldSpec(x)
	if err != nil {
		return nil, err
	}
	typ := fs.EffectiveType()
	if typ == preprocess.ConfigRefType {
		return nil, core.Configf("a %s only holds config and can't supply values", typ)
	}
	ctor, have := l.reg.Constructor(typ)
	if !have {
		return nil, core.Configf("unknown type %q", typ)
	}

	if *l.strict {
		if err := l.validator.Validate(typ, fs.ToMap()); err != nil {
			return nil, err
		}
	}
	if err := l.checkConfigRef(fs); err != nil {
		return nil, err
	}

	s, err := ctor(fs, l)
	if err != nil {
		return nil, err
	}
	if typ == preprocess.NestedType {
		return s, nil
	}
	return l.alter(fs, s)
}

// checkConfigRef follows a config_ref chain to its end.  Every link
// must be a config_ref.  A missing ref, a loop or a chain longer than
// configRefDepth is a ConfigurationError.
func (l *Loader) checkConfigRef(fs *core.FieldSpec) error {
	x, have := fs.Config[core.ConfigRefKey]
	seen := make(map[string]bool)
	for have {
		name, is := x.(string)
		if !is {
			return core.Configf("%s %v is not a string", core.ConfigRefKey, x)
		}
		if seen[name] {
			return core.KeyConfigf(name, "%s chain loops back to %s", core.ConfigRefKey, name)
		}
		if len(seen) == configRefDepth {
			return core.KeyConfigf(name, "%s chain is too long", core.ConfigRefKey)
		}
		seen[name] = true

		ref, err := l.GetRef(name)
		if err != nil {
			return err
		}
		if ref.Type != preprocess.ConfigRefType {
			return core.KeyConfigf(name, "%s points at a %s, not a %s", core.ConfigRefKey, ref.EffectiveType(), preprocess.ConfigRefType)
		}
		x, have = ref.Config[core.ConfigRefKey]
	}
	return nil
}

// Config implements core.Loader.
//
// Options missing from the Field Spec's own config are looked up in
// its config_ref, which is read again for every lookup.  A
// config_ref's own config can have a config_ref.
func (l *Loader) Config(fs *core.FieldSpec) core.Config {
	return core.NewConfig(fs.Config, func(name string) (map[string]interface{}, error) {
		return l.refConfig(name, configRefDepth)
	})
}

func (l *Loader) refConfig(name string, depth int) (map[string]interface{}, error) {
	if depth == 0 {
		return nil, core.KeyConfigf(name, "%s chain is too long", core.ConfigRefKey)
	}
	ref, err := l.GetRef(name)
	if err != nil {
		return nil, err
	}
	next, _ := ref.Config[core.ConfigRefKey].(string)
	if next == "" {
		return ref.Config, nil
	}
	below, err := l.refConfig(next, depth-1)
	if err != nil {
		return nil, err
	}
	acc := make(map[string]interface{}, len(below)+len(ref.Config))
	for k, v := range below {
		acc[k] = v
	}
	for k, v := range ref.Config {
		if k != core.ConfigRefKey {
			acc[k] = v
		}
	}
	return acc, nil
}

// Compile builds the Supplier of every field and of every name in
// the field groups, so that a spec that compiles can't fail later
// for structural reasons.
func (l *Loader) Compile() error {
	for _, name := range l.spec.Keys() {
		if _, err := l.Get(name); err != nil {
			return err
		}
	}
	kp, err := l.KeyProvider()
	if err != nil {
		return err
	}
	for _, names := range keys.Groups(kp) {
		for _, name := range names {
			if _, err := l.Get(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// KeyProvider makes the key provider for the spec's fields and
// field_groups.  A group that names something that is neither a
// field nor a ref is a ConfigurationError.
func (l *Loader) KeyProvider() (keys.Provider, error) {
	kp, err := keys.New(l.spec.Keys(), l.spec.FieldGroups, l.spec.GroupOrder)
	if err != nil {
		return nil, err
	}
	groups := keys.Groups(kp)
	for _, group := range sortedGroups(groups) {
		for _, name := range groups[group] {
			if !l.Has(name) {
				return nil, core.KeyConfigf(core.FieldGroupsKey, "group %q names %q, which is neither a field nor a ref", group, name)
			}
		}
	}
	return kp, nil
}

func sortedGroups(groups map[string][]string) []string {
	acc := make([]string, 0, len(groups))
	for group := range groups {
		acc = append(acc, group)
	}
	sort.Strings(acc)
	return acc
}
