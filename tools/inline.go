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
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/util"

	"github.com/jsccast/yaml"
)

var inlinePattern = regexp.MustCompile(`(?s)(.*?)(%inline *\("([^"]*)"\))`)

// Inline replaces '%inline("NAME")' with f(NAME).
func Inline(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	i := 0
	acc := make([]byte, 0, len(bs))
	for {
		part := inlinePattern.FindSubmatch(bs[i:])
		if part == nil {
			acc = append(acc, bs[i:]...)
			break
		}
		i += len(part[0])
		acc = append(acc, part[1]...)
		replacement, err := f(string(part[3]))
		if err != nil {
			return nil, err
		}
		util.Logf("inlining %s (%d bytes)", part[3], len(replacement))
		acc = append(acc, replacement...)
	}
	return acc, nil
}

// RenderVars replaces each '{{ name }}' whose name is a variable
// with the variable's value.  Strings go in as they are, and other
// values go in as JSON.
//
// Placeholders that don't name a variable are left alone, since
// calculate and templated fields use the same syntax.
func RenderVars(bs []byte, vars map[string]interface{}) ([]byte, error) {
	if len(vars) == 0 {
		return bs, nil
	}
	s, err := core.RenderPlaceholders(string(bs), func(name string) (string, error) {
		x, have := vars[name]
		if !have {
			return "{{" + name + "}}", nil
		}
		switch vv := x.(type) {
		case string:
			return vv, nil
		case []interface{}, map[string]interface{}:
			js, err := json.Marshal(vv)
			if err != nil {
				return "", core.Configf("variable %s: %s", name, err)
			}
			return string(js), nil
		default:
			return core.Stringify(vv), nil
		}
	})
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// LoadVars reads a JSON or YAML file of variables.
func LoadVars(filename string) (map[string]interface{}, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, &core.ResourceError{Resource: filename, Err: err}
	}
	var x interface{}
	if err := yaml.Unmarshal(bs, &x); err != nil {
		return nil, core.Configf("vars file %s: %s", filename, err)
	}
	if x == nil {
		return map[string]interface{}{}, nil
	}
	y, err := core.Canonicalize(x)
	if err != nil {
		return nil, core.Configf("vars file %s: %s", filename, err)
	}
	m, is := y.(map[string]interface{})
	if !is {
		return nil, core.Configf("vars file %s has a %T, not a mapping", filename, y)
	}
	return m, nil
}

// ParseVars interprets "name=value" arguments.  Values are strings.
func ParseVars(args []string) (map[string]interface{}, error) {
	acc := make(map[string]interface{}, len(args))
	for _, arg := range args {
		i := strings.Index(arg, "=")
		if i <= 0 {
			return nil, core.Configf("variable %q isn't name=value", arg)
		}
		acc[arg[:i]] = arg[i+1:]
	}
	return acc, nil
}

// ReadSpec reads a spec file, inlines files that it mentions (relative
// to its directory), renders the variables into it and parses it.
func ReadSpec(filename string, vars map[string]interface{}) (*core.Spec, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, &core.ResourceError{Resource: filename, Err: err}
	}
	return ParseSpec(bs, filepath.Dir(filename), vars)
}

// ParseSpec inlines files (relative to the directory), renders the
// variables and parses the spec text.
func ParseSpec(bs []byte, dir string, vars map[string]interface{}) (*core.Spec, error) {
	bs, err := Inline(bs, func(name string) ([]byte, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		bs, err := os.ReadFile(name)
		if err != nil {
			return nil, &core.ResourceError{Resource: name, Err: err}
		}
		return bs, nil
	})
	if err != nil {
		return nil, err
	}
	if bs, err = RenderVars(bs, vars); err != nil {
		return nil, err
	}
	return core.ParseSpec(bs)
}
