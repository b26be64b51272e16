package tools

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/Comcast/datagen/registry"

	md "github.com/russross/blackfriday/v2"
)

// Usage returns the markdown usage of a type.
func Usage(r *registry.Registry, typ string) (string, error) {
	u, have := r.UsageOf(typ)
	if !have {
		return "", fmt.Errorf("no usage for type %q", typ)
	}
	return u(), nil
}

// RenderUsageHTML writes the usage of the given types (all of them
// if none are given) as HTML.
func RenderUsageHTML(r *registry.Registry, out io.Writer, types ...string) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}
	if len(types) == 0 {
		types = r.Names(registry.Usage)
	}
	for _, typ := range types {
		u, err := Usage(r, typ)
		if err != nil {
			return err
		}
		f(`<div class="typeDoc doc" id="%s">%s</div>`, html.EscapeString(typ), md.Run([]byte(u)))
	}
	return nil
}

// RenderSpecHTML writes a table of the spec's fields and refs with
// their types (linked to their usage) and dependencies.
func RenderSpecHTML(a *SpecAnalysis, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}
	row := func(kind, name string) {
		typ := a.typeOf(name)
		deps := make([]string, len(a.Dependencies[name]))
		for i, dep := range a.Dependencies[name] {
			deps[i] = fmt.Sprintf(`<code>%s</code>`, html.EscapeString(dep))
		}
		f(`<tr class="%s"><td><span class="name">%s</span></td><td><a href="#%s"><code>%s</code></a></td><td>%s</td></tr>`,
			kind, html.EscapeString(name), html.EscapeString(typ), html.EscapeString(typ), strings.Join(deps, ", "))
	}

	f(`<div class="fields"><table>`)
	f(`<tr><th>name</th><th>type</th><th>uses</th></tr>`)
	for _, name := range a.Fields {
		row("field", name)
	}
	for _, name := range a.Refs {
		row("ref", name)
	}
	f(`</table></div>`)

	if len(a.UnknownTypes) > 0 || len(a.MissingNames) > 0 || len(a.UnusedRefs) > 0 {
		f(`<div class="problems"><ul>`)
		for _, typ := range a.UnknownTypes {
			f(`<li>unknown type <code>%s</code></li>`, html.EscapeString(typ))
		}
		for _, name := range a.MissingNames {
			f(`<li>missing <code>%s</code></li>`, html.EscapeString(name))
		}
		for _, name := range a.UnusedRefs {
			f(`<li>unused ref <code>%s</code></li>`, html.EscapeString(name))
		}
		f(`</ul></div>`)
	}
	return nil
}

// RenderPage writes an HTML page with the spec (if not nil) and the
// usage of the types it uses (or of every type).
func RenderPage(r *registry.Registry, a *SpecAnalysis, title string, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/spec-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(title))
	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}
	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(title))

	var types []string
	if a != nil {
		if err := RenderSpecHTML(a, out); err != nil {
			return err
		}
		for _, typ := range r.Names(registry.Usage) {
			if a.Types[typ] > 0 {
				types = append(types, typ)
			}
		}
		if len(types) == 0 {
			types = []string{}
		}
	}
	if types == nil || len(types) > 0 {
		if err := RenderUsageHTML(r, out, types...); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)
	return nil
}
