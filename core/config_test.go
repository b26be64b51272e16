package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetters(t *testing.T) {
	c := NewConfig(map[string]interface{}{
		"s":     "x",
		"n":     3.0,
		"ns":    "7",
		"f":     "2.5",
		"b":     "true",
		"b0":    0.0,
		"d":     "2s",
		"dms":   250.0,
		"size":  "1 KiB",
		"bytes": 10.0,
		"bad":   []interface{}{},
	}, nil)

	assert.Equal(t, "x", c.String("s", "def"))
	assert.Equal(t, "3", c.String("n", "def"))
	assert.Equal(t, "def", c.String("missing", "def"))

	n, err := c.Int("ns", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = c.Int("missing", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	_, err = c.Int("f", 0)
	assert.True(t, IsConfigurationError(err))

	f, err := c.Float("f", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
	_, err = c.Float("bad", 0)
	assert.True(t, IsConfigurationError(err))

	b, err := c.Bool("b", false)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = c.Bool("b0", true)
	require.NoError(t, err)
	assert.False(t, b)
	_, err = c.Bool("s", false)
	assert.True(t, IsConfigurationError(err))

	d, err := c.Duration("d", 0)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
	d, err = c.Duration("dms", 0)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
	_, err = c.Duration("s", 0)
	assert.True(t, IsConfigurationError(err))

	size, err := c.Bytes("size", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), size)
	size, err = c.Bytes("bytes", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), size)
	_, err = c.Bytes("s", 0)
	assert.True(t, IsConfigurationError(err))
}

func TestConfigRef(t *testing.T) {
	shared := map[string]interface{}{"prefix": "a-", "n": 1.0}
	resolve := func(name string) (map[string]interface{}, error) {
		if name != "shared" {
			return nil, Configf("no %s", name)
		}
		return shared, nil
	}
	c := NewConfig(map[string]interface{}{ConfigRefKey: "shared", "n": 2.0}, resolve)

	assert.Equal(t, "a-", c.String("prefix", ""))
	n, err := c.Int("n", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	shared["prefix"] = "b-"
	assert.Equal(t, "b-", c.String("prefix", ""))

	assert.False(t, NewConfig(map[string]interface{}{ConfigRefKey: "other"}, resolve).Has("prefix"))
	assert.False(t, NewConfig(map[string]interface{}{ConfigRefKey: "shared"}, nil).Has("prefix"))

	m := c.Map()
	m["n"] = 3.0
	n, _ = c.Int("n", 0)
	assert.Equal(t, 2, n)
}
