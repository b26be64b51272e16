package goja

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/datagen/core"
)

func libs(m map[string]string) LibraryProvider {
	return func(ctx context.Context, name string) (string, error) {
		src, have := m[name]
		if !have {
			return "", &core.ResourceError{Resource: name}
		}
		return src, nil
	}
}

func TestInlineRequires(t *testing.T) {
	p := libs(map[string]string{
		"double.js": "function double(x) { return 2*x; }",
		"inc.js":    "function inc(x) { return x+1; }",
	})

	src, err := InlineRequires(context.Background(), `require("double.js"); require("inc.js"); inc(double(__v0))`, p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src, "function double") || !strings.Contains(src, "function inc") {
		t.Fatalf("didn't inline: %s", src)
	}
	if strings.Contains(src, "require") {
		t.Fatalf("left a require: %s", src)
	}

	i := NewInterpreter()
	i.LibraryProvider = p
	compiled, err := i.Compile(context.Background(), `require("double.js"); require("inc.js"); inc(double(__v0))`)
	if err != nil {
		t.Fatal(err)
	}
	x, err := i.Exec(context.Background(), map[string]interface{}{"__v0": 20.0}, compiled)
	if err != nil {
		t.Fatal(err)
	}
	if x != 41.0 {
		t.Fatalf("got %#v", x)
	}
}

func TestInlineRequiresNone(t *testing.T) {
	src, err := InlineRequires(context.Background(), `1 + 2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if src != `1 + 2` {
		t.Fatalf("got %q", src)
	}
}

func TestInlineRequiresErrors(t *testing.T) {
	ctx := context.Background()
	p := libs(nil)
	if _, err := InlineRequires(ctx, `require("missing.js"); 1`, p); !core.IsResourceError(err) {
		t.Fatalf("wanted a ResourceError, got %v", err)
	}
	if _, err := InlineRequires(ctx, `require(name); 1`, p); !core.IsConfigurationError(err) {
		t.Fatalf("wanted a ConfigurationError, got %v", err)
	}
	if _, err := InlineRequires(ctx, `require("a.js"); 1`, nil); !core.IsConfigurationError(err) {
		t.Fatalf("wanted a ConfigurationError, got %v", err)
	}
}

func TestFileLibraryProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.js"), []byte("var k = 3;"), 0644); err != nil {
		t.Fatal(err)
	}
	src, err := FileLibraryProvider(dir)(context.Background(), "lib.js")
	if err != nil {
		t.Fatal(err)
	}
	if src != "var k = 3;" {
		t.Fatalf("got %q", src)
	}
	if _, err := FileLibraryProvider(dir)(context.Background(), "nope.js"); !core.IsResourceError(err) {
		t.Fatalf("wanted a ResourceError, got %v", err)
	}
}
