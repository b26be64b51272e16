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

// Package testutil has small helpers for tests that deal with specs
// and records.
package testutil

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/Comcast/datagen/core"
)

// JS renders its argument as JSON or as a string indicating an error.
func JS(x interface{}) string {
	bs, err := json.Marshal(&x)
	if err != nil {
		log.Printf("warning: testutil.JS error %s for %#v", err, x)
		return fmt.Sprintf("%#v", x)
	}
	return string(bs)
}

// Dwimjs, when given a string or bytes that parse as JSON, returns
// the parsed value.  Otherwise it returns what's given.
//
// See https://en.wikipedia.org/wiki/DWIM.
func Dwimjs(x interface{}) interface{} {
	switch vv := x.(type) {
	case []byte:
		return Dwimjs(string(vv))
	case string:
		var v interface{}
		if err := json.Unmarshal([]byte(vv), &v); err != nil {
			return vv
		}
		return v
	default:
		return x
	}
}

// Spec parses spec source (JSON or YAML) or fails the test.
func Spec(t *testing.T, src string) *core.Spec {
	t.Helper()
	s, err := core.ParseSpec([]byte(src))
	if err != nil {
		t.Fatalf("can't parse spec %s: %s", src, err)
	}
	return s
}

// SameJSON reports whether two values have the same JSON
// representation, which is handy for comparing specs and records
// without caring about int vs float64.  Strings and bytes are parsed
// (see Dwimjs) first.
func SameJSON(x, y interface{}) bool {
	norm := func(z interface{}) string {
		return JS(Dwimjs(JS(Dwimjs(z))))
	}
	return norm(x) == norm(y)
}

// WriteFile writes a file in a temporary directory that's removed
// after the test.  It returns the file's path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}
