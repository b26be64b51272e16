package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/sinks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(context.Background(), args, &buf)
	return buf.String(), err
}

func TestInline(t *testing.T) {
	out, err := runArgs(t, "-inline", `{"a": {"type": "values", "data": [1, 2, 3]}}`, "-i", "3")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n", out)
}

func TestFormatAndVars(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("greeting: \"{{ word }}\"\nn:\n  type: range\n  data: [1, 5]\n"), 0644))
	vars := filepath.Join(dir, "vars.yaml")
	require.NoError(t, os.WriteFile(vars, []byte("word: hi\n"), 0644))

	out, err := runArgs(t, "-spec", spec, "-vars-file", vars, "-i", "2", "-format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "hi,1\nhi,2\n", out)

	out, err = runArgs(t, "-spec", spec, "-vars-file", vars, "-var", "word=yo", "-i", "1")
	require.NoError(t, err)
	assert.Equal(t, "{\"greeting\":\"yo\",\"n\":1}\n", out)
}

func TestSetDefault(t *testing.T) {
	out, err := runArgs(t, "-inline", `{"a": 1}`, "-i", "1", "-set-default", sinks.JSONIndentDefault+"=2")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out)
}

func TestBolt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.db")
	_, err := runArgs(t, "-inline", `{"a": [1, 2]}`, "-i", "2", "-bolt", filename)
	require.NoError(t, err)

	b, err := sinks.OpenBolt(filename, "")
	require.NoError(t, err)
	defer b.Close()
	n := 0
	require.NoError(t, b.Each(context.Background(), func(int, map[string]interface{}) error {
		n++
		return nil
	}))
	assert.Equal(t, 2, n)
}

func TestSQL(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "out.sqlite")
	_, err := runArgs(t, "-inline", `{"a": [1, 2]}`, "-i", "3", "-sql", dsn, "-sql-table", "made")
	require.NoError(t, err)

	db, err := sinks.OpenSQL(context.Background(), "sqlite", dsn, "made")
	require.NoError(t, err)
	defer db.Close()
	var as []interface{}
	require.NoError(t, db.Each(context.Background(), func(_ int, values map[string]interface{}) error {
		as = append(as, values["a"])
		return nil
	}))
	assert.Equal(t, []interface{}{1.0, 2.0, 1.0}, as)

	_, err = runArgs(t, "-inline", `{"a": 1}`, "-sql", dsn, "-sql-driver", "oracle")
	assert.True(t, core.IsConfigurationError(err))
}

func TestHelp(t *testing.T) {
	out, err := runArgs(t, "-list-types")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "rand_int_range")

	out, err = runArgs(t, "-type-help", "uuid")
	require.NoError(t, err)
	assert.Contains(t, out, "variant")

	_, err = runArgs(t, "-type-help", "squiggle")
	assert.Error(t, err)

	out, err = runArgs(t, "-html")
	require.NoError(t, err)
	assert.Contains(t, out, "<html>")
}

func TestGraphs(t *testing.T) {
	spec := `{"c": {"type": "combine", "refs": ["a", "b"]}, "refs": {"a": 1, "b": 2}}`
	out, err := runArgs(t, "-inline", spec, "-dot")
	require.NoError(t, err)
	assert.Contains(t, out, `"c" -> "a"`)

	out, err = runArgs(t, "-inline", spec, "-mermaid")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
}

func TestErrors(t *testing.T) {
	_, err := runArgs(t)
	assert.Error(t, err)

	_, err = runArgs(t, "-inline", `{"a": {"type": "squiggle"}}`)
	assert.True(t, core.IsConfigurationError(err))

	_, err = runArgs(t, "-inline", `{"a": 1}`, "-format", "xml")
	assert.True(t, core.IsConfigurationError(err))

	_, err = runArgs(t, "-inline", `{"a": 1}`, "-spec", "x.json")
	assert.Error(t, err)
}
