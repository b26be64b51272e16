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
	"fmt"
	"io"
)

type MermaidOpts struct {
	// ShowTypes will add each name's type to its label.
	ShowTypes bool `json:"showTypes"`

	// RefFill is the fill color for refs.
	RefFill string `json:"refFill,omitempty"`

	// MissingFill is the fill color for names that are used but
	// not defined.
	MissingFill string `json:"missingFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the spec's dependencies.
func Mermaid(a *SpecAnalysis, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowTypes:   true,
			RefFill:     "#bcf2db",
			MissingFill: "#f2bcbc",
		}
	}

	fmt.Fprintf(w, "graph LR\n")

	nids := make(map[string]string)
	num := 0
	node := func(name, open, close string) string {
		if nid, already := nids[name]; already {
			return nid
		}
		num++
		nid := fmt.Sprintf("n%d", num)
		nids[name] = nid
		label := name
		if opts.ShowTypes {
			if typ := a.typeOf(name); typ != "" {
				label += "<br/>" + typ
			}
		}
		fmt.Fprintf(w, "  %s%s\"%s\"%s\n", nid, open, escape(label), close)
		return nid
	}

	for _, name := range a.Fields {
		node(name, "[", "]")
	}
	for _, name := range a.Refs {
		nid := node(name, "(", ")")
		if opts.RefFill != "" {
			fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.RefFill)
		}
	}
	for _, name := range a.MissingNames {
		nid := node(name, "{", "}")
		if opts.MissingFill != "" {
			fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.MissingFill)
		}
	}

	for _, names := range [][]string{a.Fields, a.Refs} {
		for _, name := range names {
			for _, dep := range a.Dependencies[name] {
				fmt.Fprintf(w, "  %s --> %s\n", nids[name], nids[dep])
			}
		}
	}
	return nil
}
