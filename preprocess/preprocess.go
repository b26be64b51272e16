// Package preprocess rewrites raw specs into canonical specs.
//
// A pass is a core.Pass: it takes a Spec and returns a new one
// without touching its argument.  Every pass leaves a canonical spec
// as it is, so running the passes twice gives the same result as
// running them once.
//
// The built-in passes, in order, are shorthand, csv_select and
// nested.  Passes registered later by extensions run after those.
// Then the type check runs.  It only logs warnings.
package preprocess

import (
	"fmt"
	"sort"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"
	"github.com/Comcast/datagen/util"
)

// Names of the built-in passes.
const (
	ShorthandPass = "shorthand"
	CSVSelectPass = "csv_select"
	NestedPass    = "nested"
	TypeCheckPass = "typecheck"
)

// Types the passes know about.
const (
	CSVSelectType = "csv_select"
	CSVType       = "csv"
	ConfigRefType = "config_ref"
	NestedType    = "nested"
)

// Register registers the built-in passes.
func Register(r *registry.Registry) {
	r.RegisterPreprocessor(ShorthandPass, Shorthand)
	r.RegisterPreprocessor(CSVSelectPass, CSVSelect)
	r.RegisterPreprocessor(NestedPass, Nested)
}

// Run applies the registry's passes in order and then the type
// check.
func Run(r *registry.Registry, s *core.Spec) (*core.Spec, error) {
	for _, name := range r.Names(registry.Preprocessors) {
		if name == TypeCheckPass {
			continue
		}
		p, _ := r.Preprocessor(name)
		next, err := p(s)
		if err != nil {
			return nil, fmt.Errorf("preprocess %s: %w", name, err)
		}
		util.Logf("preprocess %s done", name)
		s = next
	}
	return TypeCheck(r)(s)
}

// TypeCheck makes a pass that warns about every type the registry
// doesn't know.  Unknown types aren't errors, since an extension
// might register them later.
func TypeCheck(r *registry.Registry) core.Pass {
	return func(s *core.Spec) (*core.Spec, error) {
		for _, name := range s.Keys() {
			checkType(r, name, s.Fields[name])
		}
		for _, name := range sortedKeys(s.Refs) {
			checkType(r, core.RefsKey+"."+name, s.Refs[name])
		}
		return s, nil
	}
}

func checkType(r *registry.Registry, key string, x interface{}) {
	fm, is := x.(map[string]interface{})
	if !is || !core.IsFieldSpecMap(fm) {
		return
	}
	t, _ := fm[core.TypeMember].(string)
	if t != "" {
		if _, have := r.Constructor(t); !have {
			util.Warnf("unknown type %q for %s", t, key)
		}
	}
	if t != NestedType {
		return
	}
	fields, _ := fm[core.FieldsMember].(map[string]interface{})
	for _, name := range sortedKeys(fields) {
		checkType(r, key+"."+name, fields[name])
	}
}

// fieldSpecMap returns a copy of x if x is written as a Field Spec.
// Otherwise x becomes the data of a new Field Spec.
func fieldSpecMap(x interface{}) map[string]interface{} {
	if m, is := x.(map[string]interface{}); is && core.IsFieldSpecMap(m) {
		return core.CopyValue(m).(map[string]interface{})
	}
	return map[string]interface{}{
		core.DataMember: core.CopyValue(x),
	}
}

// configOf returns a copy of the Field Spec's config.
func configOf(key string, fm map[string]interface{}) (map[string]interface{}, error) {
	acc := make(map[string]interface{})
	switch vv := fm[core.ConfigMember].(type) {
	case nil:
	case map[string]interface{}:
		for k, v := range vv {
			acc[k] = core.CopyValue(v)
		}
	default:
		return nil, core.KeyConfigf(key, "config is a %T, not a mapping", vv)
	}
	return acc, nil
}

func typeOf(x interface{}) string {
	m, is := x.(map[string]interface{})
	if !is {
		return ""
	}
	t, _ := m[core.TypeMember].(string)
	return t
}

func sortedKeys(m map[string]interface{}) []string {
	acc := make([]string, 0, len(m))
	for k := range m {
		acc = append(acc, k)
	}
	sort.Strings(acc)
	return acc
}
