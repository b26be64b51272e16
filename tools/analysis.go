/* Copyright 2018 Comcast Cable Communications Management, LLC
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

package tools

import (
	"sort"

	"github.com/Comcast/datagen/core"
)

// SpecAnalysis summarizes a (canonical) spec: what its fields and
// refs are and how they depend on each other.
type SpecAnalysis struct {
	spec *core.Spec

	Fields []string
	Refs   []string

	// Types maps each type in use to the number of Field Specs
	// (including nested ones) that use it.
	Types map[string]int

	// Dependencies maps each field and ref to the names it uses.
	Dependencies map[string][]string

	// UnknownTypes are types that the registry doesn't know.
	UnknownTypes []string

	// UnusedRefs are refs that nothing uses.
	UnusedRefs []string

	// MissingNames are names used that are neither fields nor
	// refs.
	MissingNames []string
}

// Analyze analyzes the spec.  Types are checked with known, which
// can be nil.
func Analyze(s *core.Spec, known func(typ string) bool) (*SpecAnalysis, error) {
	a := &SpecAnalysis{
		spec:         s,
		Fields:       s.Keys(),
		Types:        make(map[string]int),
		Dependencies: make(map[string][]string),
	}
	for name := range s.Refs {
		a.Refs = append(a.Refs, name)
	}
	sort.Strings(a.Refs)

	used, unknown, missing := make(map[string]bool), make(map[string]bool), make(map[string]bool)
	for _, names := range [][]string{a.Fields, a.Refs} {
		for _, name := range names {
			x, _ := s.Lookup(name)
			deps := make(map[string]bool)
			if err := walk(x, func(fs *core.FieldSpec) {
				typ := fs.EffectiveType()
				a.Types[typ]++
				if known != nil && !known(typ) {
					unknown[typ] = true
				}
				for _, dep := range uses(fs) {
					deps[dep] = true
				}
			}); err != nil {
				return nil, err
			}
			a.Dependencies[name] = keysToStringSlice(deps)
			for dep := range deps {
				used[dep] = true
				if _, have := s.Lookup(dep); !have {
					missing[dep] = true
				}
			}
		}
	}

	unused := make(map[string]bool)
	for _, name := range a.Refs {
		if !used[name] {
			unused[name] = true
		}
	}
	a.UnknownTypes = keysToStringSlice(unknown)
	a.UnusedRefs = keysToStringSlice(unused)
	a.MissingNames = keysToStringSlice(missing)
	return a, nil
}

// walk calls f on the Field Spec and on every nested Field Spec.
func walk(x interface{}, f func(fs *core.FieldSpec)) error {
	fs, err := core.AsFieldSpec(x)
	if err != nil {
		return err
	}
	f(fs)
	if fs.EffectiveType() != "nested" {
		return nil
	}
	fields, _ := fs.Fields.(map[string]interface{})
	for _, name := range sortedKeys(fields) {
		if err := walk(fields[name], f); err != nil {
			return err
		}
	}
	return nil
}

// uses returns the names of the fields and refs a Field Spec uses
// directly.
func uses(fs *core.FieldSpec) []string {
	var acc []string
	add := func(x interface{}) {
		switch vv := x.(type) {
		case map[string]interface{}:
			// A mapping of aliases to names.
			for _, y := range vv {
				if s, is := y.(string); is {
					acc = append(acc, s)
				}
			}
		case []interface{}:
			for _, y := range vv {
				if _, is := y.([]interface{}); is {
					names, _ := core.Names(y)
					acc = append(acc, names...)
					continue
				}
				if s, is := y.(string); is {
					acc = append(acc, s)
				}
			}
		case string:
			acc = append(acc, vv)
		}
	}

	switch fs.EffectiveType() {
	case "ref":
		if fs.Ref != "" {
			acc = append(acc, fs.Ref)
		} else {
			add(fs.Data)
		}
	case "weighted_ref":
		if m, is := fs.Data.(map[string]interface{}); is {
			acc = append(acc, sortedKeys(m)...)
		}
	case "nested":
	default:
		add(fs.Refs)
		add(fs.Fields)
	}
	if name, is := fs.Config[core.ConfigRefKey].(string); is {
		acc = append(acc, name)
	}
	return acc
}

func sortedKeys(m map[string]interface{}) []string {
	acc := make([]string, 0, len(m))
	for k := range m {
		acc = append(acc, k)
	}
	sort.Strings(acc)
	return acc
}

// keysToStringSlice converts the keys from a map into a sorted slice
// of strings.  Optionally, it can add a default value if the map is
// empty.
func keysToStringSlice(m map[string]bool, defaultValue ...string) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)

	if len(list) == 0 && len(defaultValue) > 0 {
		return []string{defaultValue[0]}
	}

	return list
}
