/* Copyright 2019 Comcast Cable Communications Management, LLC
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

package goja

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Comcast/datagen/core"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// LibraryProvider returns the source of a named library.
type LibraryProvider func(ctx context.Context, name string) (string, error)

// FileLibraryProvider reads libraries from files.  Relative names are
// resolved against the directory.
func FileLibraryProvider(dir string) LibraryProvider {
	return func(ctx context.Context, name string) (string, error) {
		filename := name
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(dir, filename)
		}
		bs, err := os.ReadFile(filename)
		if err != nil {
			return "", &core.ResourceError{Resource: filename, Err: err}
		}
		return string(bs), nil
	}
}

// InlineRequires replaces each top-level 'require("NAME");' statement
// in a formula with the library's source, so a formula like
//
//	require("geo.js"); distance({{a}}, {{b}})
//
// still compiles once up front.
func InlineRequires(ctx context.Context, src string, provider LibraryProvider) (string, error) {
	p, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return "", core.Configf("can't parse %q: %s", src, err)
	}

	type span struct {
		from, to int
		name     string
	}
	var requires []span
	for _, s := range p.Body {
		name, ok, err := requireName(s)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		// Idx is 1-based.
		requires = append(requires, span{int(s.Idx0()) - 1, int(s.Idx1()) - 1, name})
	}
	if len(requires) == 0 {
		return src, nil
	}
	if provider == nil {
		return "", core.Configf("%q requires %q but there's no library provider", src, requires[0].name)
	}

	acc := ""
	at := 0
	for _, r := range requires {
		lib, err := provider(ctx, r.name)
		if err != nil {
			return "", err
		}
		acc += src[at:r.from] + lib + "\n"
		at = r.to
	}
	return acc + src[at:], nil
}

// requireName returns the argument if the statement is a call of
// require with one string literal.
func requireName(s ast.Statement) (string, bool, error) {
	exp, is := s.(*ast.ExpressionStatement)
	if !is {
		return "", false, nil
	}
	call, is := exp.Expression.(*ast.CallExpression)
	if !is {
		return "", false, nil
	}
	id, is := call.Callee.(*ast.Identifier)
	if !is || id.Name != "require" {
		return "", false, nil
	}
	if len(call.ArgumentList) != 1 {
		return "", false, core.Configf("require takes one library name, not %d arguments", len(call.ArgumentList))
	}
	lit, is := call.ArgumentList[0].(*ast.StringLiteral)
	if !is {
		return "", false, core.Configf("require needs a literal library name")
	}
	return lit.Value.String(), true, nil
}
