package tools

import (
	"bytes"
	"strings"
	"testing"
)

func TestMermaid(t *testing.T) {
	var buf bytes.Buffer
	if err := Mermaid(analysis(t), &buf, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "graph LR\n") {
		t.Fatal(out)
	}
	// Fields come first, in order.
	if !strings.Contains(out, `n1["name<br/>combine"]`) {
		t.Fatal(out)
	}
	if !strings.Contains(out, "style") || !strings.Contains(out, " --> ") {
		t.Fatal(out)
	}
}
