package loader_test

import (
	"fmt"
	"testing"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/registry"
	"github.com/Comcast/datagen/types"
	"github.com/Comcast/datagen/util/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string, opts ...loader.Option) *loader.Loader {
	t.Helper()
	l, err := loader.New(testutil.Spec(t, src), types.Standard(), opts...)
	require.NoError(t, err)
	return l
}

func next(t *testing.T, l *loader.Loader, key string, iteration int) interface{} {
	t.Helper()
	s, err := l.Get(key)
	require.NoError(t, err)
	x, err := s.Next(iteration)
	require.NoError(t, err)
	return x
}

func TestGetCaches(t *testing.T) {
	l := load(t, `{"a": [1, 2, 3], "refs": {"r": "x"}}`)
	s1, err := l.Get("a")
	require.NoError(t, err)
	s2, err := l.Get("a")
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	assert.Equal(t, "x", next(t, l, "r", 0))
	assert.True(t, l.Has("a"))
	assert.True(t, l.Has("r"))
	assert.False(t, l.Has("nope"))
}

func TestNoKey(t *testing.T) {
	l := load(t, `{"a": 1}`)
	_, err := l.Get("b")
	assert.True(t, core.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "no key found")
}

func TestSelfReference(t *testing.T) {
	l := load(t, `{"a": {"type": "ref", "ref": "b"}, "refs": {"b": {"type": "ref", "ref": "a"}}}`)
	_, err := l.Get("a")
	assert.True(t, core.IsConfigurationError(err))
}

func TestUnknownType(t *testing.T) {
	l := load(t, `{"a": {"type": "squiggle"}}`)
	_, err := l.Get("a")
	assert.True(t, core.IsConfigurationError(err))
	assert.Error(t, l.Compile())
}

func TestConfigRefNotASource(t *testing.T) {
	l := load(t, `{"a": {"type": "ref", "ref": "shared"}, "refs": {"shared": {"type": "config_ref", "config": {"x": 1}}}}`)
	_, err := l.Get("a")
	assert.True(t, core.IsConfigurationError(err))
}

func TestConfigRefReadEveryTime(t *testing.T) {
	l := load(t, `{
	  "a": {"type": "values", "data": 1, "config": {"config_ref": "shared", "own": true}},
	  "refs": {"shared": {"type": "config_ref", "config": {"prefix": "x-"}}}}`)

	fs, err := core.AsFieldSpec(l.Spec().Fields["a"])
	require.NoError(t, err)
	cfg := l.Config(fs)
	assert.Equal(t, "x-", cfg.String("prefix", ""))
	assert.True(t, cfg.Has("own"))

	shared, err := l.GetRef("shared")
	require.NoError(t, err)
	shared.Config["prefix"] = "y-"
	assert.Equal(t, "y-", cfg.String("prefix", ""))

	// Built after the change.
	assert.Equal(t, "y-1", next(t, l, "a", 0))
}

func TestConfigRefChain(t *testing.T) {
	l := load(t, `{
	  "a": {"type": "values", "data": 1, "config": {"config_ref": "outer"}},
	  "refs": {
	    "outer": {"type": "config_ref", "config": {"config_ref": "inner", "suffix": "!"}},
	    "inner": {"type": "config_ref", "config": {"prefix": "<", "suffix": ">"}}}}`)
	assert.Equal(t, "<1!", next(t, l, "a", 0))
}

func TestConfigRefToNonConfigRef(t *testing.T) {
	l := load(t, `{"a": {"type": "values", "data": 1, "config": {"config_ref": "r"}}, "refs": {"r": [1]}}`)
	_, err := l.Get("a")
	assert.True(t, core.IsConfigurationError(err))
}

func TestConfigRefBrokenChain(t *testing.T) {
	for _, src := range []string{
		`{"a": {"type": "values", "data": "x", "config": {"config_ref": "c1"}},
		  "refs": {"c1": {"type": "config_ref", "config": {"config_ref": "c2", "prefix": "P"}},
		           "c2": {"type": "config_ref", "config": {"config_ref": "c1"}}}}`,
		`{"a": {"type": "values", "data": "x", "config": {"config_ref": "c1"}},
		  "refs": {"c1": {"type": "config_ref", "config": {"config_ref": "c1"}}}}`,
		`{"a": {"type": "values", "data": "x", "config": {"config_ref": "c1"}},
		  "refs": {"c1": {"type": "config_ref", "config": {"config_ref": "gone", "prefix": "P"}}}}`,
		`{"a": {"type": "values", "data": "x", "config": {"config_ref": "c1"}},
		  "refs": {"c1": {"type": "config_ref", "config": {"config_ref": "r"}}, "r": [1]}}`,
		`{"a": {"type": "values", "data": "x", "config": {"config_ref": "c1"}},
		  "refs": {"c1": {"type": "config_ref", "config": {"config_ref": 7}}}}`,
	} {
		l := load(t, src)
		_, err := l.Get("a")
		assert.True(t, core.IsConfigurationError(err), "%s: %v", src, err)
		assert.True(t, core.IsConfigurationError(l.Compile()), src)
	}
}

func TestConfigRefLongChain(t *testing.T) {
	refs := ""
	for i := 0; i < 20; i++ {
		refs += fmt.Sprintf(`"c%d": {"type": "config_ref", "config": {"config_ref": "c%d"}}, `, i, i+1)
	}
	refs += `"c20": {"type": "config_ref", "config": {"prefix": "P"}}`
	l := load(t, `{"a": {"type": "values", "data": "x", "config": {"config_ref": "c0"}}, "refs": {`+refs+`}}`)
	_, err := l.Get("a")
	assert.True(t, core.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "too long")
}

func TestFieldGroupsChecked(t *testing.T) {
	l := load(t, `{"a": 1, "field_groups": [["a", "nope"]]}`)
	err := l.Compile()
	assert.True(t, core.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "nope")

	_, err = l.KeyProvider()
	assert.True(t, core.IsConfigurationError(err))

	// Groups can name refs.
	l = load(t, `{"a": 1, "refs": {"r": "x"}, "field_groups": {"one": ["a"], "two": ["a", "r"]}}`)
	require.NoError(t, l.Compile())
	assert.Equal(t, "x", next(t, l, "r", 0))
}

func TestStrict(t *testing.T) {
	src := `{"id": {"type": "uuid", "config": {"variant": 5}}}`

	_, err := load(t, src, loader.WithStrict(true)).Get("id")
	assert.True(t, core.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "schema")

	// Without strict mode, the constructor complains.
	_, err = load(t, src).Get("id")
	assert.True(t, core.IsConfigurationError(err))

	l := load(t, `{"id:uuid": {}}`, loader.WithStrict(true))
	assert.True(t, l.Strict())
	assert.NoError(t, l.Compile())
}

func TestStrictFromDefault(t *testing.T) {
	r := types.Standard()
	r.SetDefault(loader.StrictModeDefault, "true")
	l, err := loader.New(testutil.Spec(t, `{"a": 1}`), r)
	require.NoError(t, err)
	assert.True(t, l.Strict())
}

func TestDataDir(t *testing.T) {
	l := load(t, `{"a": 1}`, loader.WithDataDir("/tmp/data"))
	assert.Equal(t, "/tmp/data", l.DataDir())
	assert.Equal(t, "/tmp/data/x.csv", l.Path("x.csv"))
	assert.Equal(t, "/abs/x.csv", l.Path("/abs/x.csv"))

	assert.Equal(t, ".", load(t, `{"a": 1}`).DataDir())
}

func TestAlterOrder(t *testing.T) {
	l := load(t, `{"n": {"type": "range", "data": [7, 9], "config": {"cast": "int;zfill3", "prefix": "#", "quote": "'"}}}`)
	assert.Equal(t, "'#007'", next(t, l, "n", 0))
	assert.Equal(t, "'#008'", next(t, l, "n", 1))
}

func TestAlterUnknownCaster(t *testing.T) {
	l := load(t, `{"n": {"type": "range", "data": [1, 2], "config": {"cast": "int;squash"}}}`)
	_, err := l.Get("n")
	assert.True(t, core.IsConfigurationError(err))
}

func TestAlterCount(t *testing.T) {
	l := load(t, `{
	  "three": {"type": "values", "data": [1, 2, 3, 4], "config": {"count": 3}},
	  "flat": {"type": "values", "data": [1, 2, 3, 4], "config": {"count": 3, "as_list": false}},
	  "rotating": {"type": "values", "data": ["x"], "config": {"count": [1, 2]}},
	  "formula": {"type": "values", "data": ["x"], "config": {"count": "uniform(start=2, end=2)"}}}`)

	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, next(t, l, "three", 0))
	assert.Equal(t, []interface{}{2.0, 3.0, 4.0}, next(t, l, "three", 1))
	assert.Equal(t, 1.0, next(t, l, "flat", 0))
	assert.Len(t, next(t, l, "rotating", 0), 1)
	assert.Len(t, next(t, l, "rotating", 1), 2)
	assert.Len(t, next(t, l, "formula", 0), 2)
}

func TestAlterBuffer(t *testing.T) {
	l := load(t, `{"n": {"type": "rand_int_range", "data": [1, 1000000], "config": {"buffer_size": 2}}}`)
	a := next(t, l, "n", 0)
	assert.Equal(t, a, next(t, l, "n", 0))
	next(t, l, "n", 1)
	next(t, l, "n", 2)

	s, err := l.Get("n")
	require.NoError(t, err)
	_, err = s.Next(0)
	assert.True(t, core.IsRuntimeError(err))
}

func TestCountSupplier(t *testing.T) {
	r := types.Standard()
	tests := []struct {
		count interface{}
		want  []int
	}{
		{3.0, []int{3, 3, 3}},
		{"2", []int{2, 2, 2}},
		{[]interface{}{1.0, 2.0}, []int{1, 2, 1}},
		{map[string]interface{}{"4": 1.0}, []int{4, 4, 4}},
	}
	for _, tt := range tests {
		s, err := loader.CountSupplier(r, tt.count)
		require.NoError(t, err, "%v", tt.count)
		for i, want := range tt.want {
			x, err := s.Next(i)
			require.NoError(t, err)
			n, ok := core.AsInt(x)
			assert.True(t, ok)
			assert.Equal(t, want, n, "%v at %d", tt.count, i)
		}
	}

	for _, bad := range []interface{}{nil, "lots", "bogus(x=1)", "normal(mean=1)", []interface{}{-1.0}, 2.5, true} {
		_, err := loader.CountSupplier(r, bad)
		assert.True(t, core.IsConfigurationError(err), "%v", bad)
	}
}

func TestExtensionsLoadedOnce(t *testing.T) {
	r := types.Standard()
	n := 0
	r.AddExtension("mine", func(r *registry.Registry) error {
		n++
		r.RegisterType("seven", func(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
			return core.SupplierFunc(func(int) (interface{}, error) { return 7, nil }), nil
		})
		return nil
	})
	spec := testutil.Spec(t, `{"a": {"type": "seven"}}`)
	for i := 0; i < 2; i++ {
		l, err := loader.New(spec, r)
		require.NoError(t, err)
		x, err := l.Get("a")
		require.NoError(t, err)
		v, err := x.Next(0)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 1, n)
}
