package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/datagen/util/testutil"
)

func analysis(t *testing.T) *SpecAnalysis {
	a, err := Analyze(testutil.Spec(t, analysisSpec), nil)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestDot(t *testing.T) {
	var buf bytes.Buffer
	if err := Dot(analysis(t), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"digraph G {",
		`"name" [shape=box label="name\ncombine"]`,
		`"first" [shape=ellipse`,
		`"birds" [shape=octagon`,
		`"name" -> "first"`,
		`"total" -> "price"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("no %s in\n%s", want, out)
		}
	}
}
