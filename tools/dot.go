package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/datagen/core"
)

// Dot writes a Graphviz dot file of the spec's dependencies: fields
// are boxes, refs are ellipses, and an edge goes from each name to
// the names it uses.  Missing names are red.
func Dot(a *SpecAnalysis, w io.Writer) error {
	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [style="rounded,filled" fillcolor="#eeeeee"]
  edge [fontsize = "12"]
`)

	for _, name := range a.Fields {
		fmt.Fprintf(w, "  \"%s\" [shape=box label=\"%s\\n%s\"]\n", escape(name), escape(name), escape(a.typeOf(name)))
	}
	for _, name := range a.Refs {
		fmt.Fprintf(w, "  \"%s\" [shape=ellipse label=\"%s\\n%s\"]\n", escape(name), escape(name), escape(a.typeOf(name)))
	}
	for _, name := range a.MissingNames {
		fmt.Fprintf(w, "  \"%s\" [shape=octagon fillcolor=\"#f2bcbc\"]\n", escape(name))
	}
	for _, name := range append(append([]string(nil), a.Fields...), a.Refs...) {
		for _, dep := range a.Dependencies[name] {
			fmt.Fprintf(w, "  \"%s\" -> \"%s\"\n", escape(name), escape(dep))
		}
	}

	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// typeOf gives the type of a field or ref.
func (a *SpecAnalysis) typeOf(name string) string {
	x, have := a.spec.Lookup(name)
	if !have {
		return ""
	}
	fs, err := core.AsFieldSpec(x)
	if err != nil {
		return ""
	}
	return fs.EffectiveType()
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
