package generator_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/generator"
	"github.com/Comcast/datagen/keys"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/sinks"
	"github.com/Comcast/datagen/types"
	"github.com/Comcast/datagen/util/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, src string, opts ...generator.Option) *generator.Generator {
	t.Helper()
	l, err := loader.New(testutil.Spec(t, src), types.Standard())
	require.NoError(t, err)
	g, err := generator.ForLoader(l, opts...)
	require.NoError(t, err)
	return g
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	g := newGenerator(t, `{"id": {"type": "range", "data": [1, 100]}, "name": ["a", "b"]}`,
		generator.WithRecordSink(sinks.NewWriter(&buf, nil)))
	n, err := g.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "{\"id\":1,\"name\":\"a\"}\n{\"id\":2,\"name\":\"b\"}\n{\"id\":3,\"name\":\"a\"}\n", buf.String())
}

func TestCollect(t *testing.T) {
	g := newGenerator(t, `{"a": [1, 2], "b": "x", "field_groups": [["a"], ["a", "b"]]}`)
	rs, err := g.Collect(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, rs, 4)

	for i, r := range rs {
		assert.Equal(t, i, r.Iteration)
	}
	assert.Equal(t, []string{"a"}, rs[0].Keys)
	assert.Equal(t, "0", rs[0].Group)
	assert.Equal(t, []string{"a", "b"}, rs[1].Keys)
	assert.Equal(t, "1", rs[1].Group)
	assert.Equal(t, 2.0, rs[1].Values["a"])
	assert.Equal(t, []string{"a"}, rs[2].Keys)

	_, err = g.Collect(context.Background(), -1)
	assert.True(t, core.IsConfigurationError(err))
}

func TestFieldSink(t *testing.T) {
	var seen []string
	fields := generator.FieldSinkFunc(func(ctx context.Context, iteration int, key string, value interface{}) error {
		seen = append(seen, key+"="+core.Stringify(value))
		return nil
	})
	g := newGenerator(t, `{"a": [1, 2], "b": "x"}`, generator.WithFieldSink(fields))
	_, err := g.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=x", "a=2", "b=x"}, seen)
}

func TestSinkError(t *testing.T) {
	bad := errors.New("nope")
	records := generator.RecordSinkFunc(func(ctx context.Context, r *core.Record) error {
		if r.Iteration == 1 {
			return bad
		}
		return nil
	})
	g := newGenerator(t, `{"a": 1}`, generator.WithRecordSink(records))
	n, err := g.Run(context.Background(), 5)
	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, bad))
	assert.Contains(t, err.Error(), "iteration 1")
}

func TestFieldError(t *testing.T) {
	g := newGenerator(t, `{"w": {"type": "weighted_ref", "data": {"nope": 1}}}`)
	_, err := g.Run(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, core.IsRuntimeError(err))
	assert.Contains(t, err.Error(), "iteration 0: w:")
}

func TestUndefinedFieldGroupName(t *testing.T) {
	l, err := loader.New(testutil.Spec(t, `{"a": 1, "field_groups": [["a", "nope"]]}`), types.Standard())
	require.NoError(t, err)
	_, err = generator.ForLoader(l)
	assert.True(t, core.IsConfigurationError(err))
	assert.Contains(t, err.Error(), core.FieldGroupsKey)
	assert.Contains(t, err.Error(), "nope")
}

func TestNestedFieldOrder(t *testing.T) {
	src := `{
  "user": {"type": "nested", "fields": {
    "zip": "z",
    "id:range": [1, 9],
    "address": {"type": "nested", "config": {"count": 2}, "fields": {"street": "s", "city": "c"}}
  }},
  "n": 1
}`
	var buf bytes.Buffer
	g := newGenerator(t, src, generator.WithRecordSink(sinks.NewWriter(&buf, nil)))
	_, err := g.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, `{"user":{"zip":"z","id":1,"address":[{"street":"s","city":"c"},{"street":"s","city":"c"}]},"n":1}`+"\n", buf.String())

	buf.Reset()
	g = newGenerator(t, src, generator.WithRecordSink(sinks.NewWriter(&buf, sinks.YAML)))
	_, err = g.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "---\nuser:\n  zip: z\n  id: 1\n  address:\n  - street: s\n    city: c\n  - street: s\n    city: c\nn: 1\n", buf.String())
}

func TestLoaderError(t *testing.T) {
	l, err := loader.New(testutil.Spec(t, `{"a": 1}`), types.Standard())
	require.NoError(t, err)
	g := generator.New(l, keys.NewAllFields([]string{"a", "missing"}))
	_, err = g.Next(context.Background(), 0)
	assert.True(t, core.IsConfigurationError(err))
}

func TestUnbounded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	records := generator.RecordSinkFunc(func(ctx context.Context, r *core.Record) error {
		if r.Iteration == 9 {
			cancel()
		}
		return nil
	})
	g := newGenerator(t, `{"a": 1}`, generator.WithRecordSink(records))
	n, err := g.Run(ctx, -1)
	assert.Equal(t, 10, n)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := newGenerator(t, `{"a": 1}`).Run(ctx, 5)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, context.Canceled))
}
