package suppliers

import (
	"regexp"
	"testing"

	"github.com/Comcast/datagen/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, s core.Supplier, i int) interface{} {
	t.Helper()
	x, err := s.Next(i)
	require.NoError(t, err)
	return x
}

func TestListRotatingWraps(t *testing.T) {
	s, err := NewListRotating([]interface{}{1.0, 2.0, 3.0})
	require.NoError(t, err)

	var got []interface{}
	for i := 0; i < 5; i++ {
		got = append(got, next(t, s, i))
	}
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 1.0, 2.0}, got)
}

func TestListEmpty(t *testing.T) {
	_, err := NewListRotating(nil)
	assert.True(t, core.IsConfigurationError(err))
	_, err = NewListSampling([]interface{}{})
	assert.True(t, core.IsConfigurationError(err))
}

func TestListSamplingMembers(t *testing.T) {
	s, err := NewListSampling([]interface{}{"a", "b"})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.Contains(t, []interface{}{"a", "b"}, next(t, s, i))
	}
}

func TestConstantCopies(t *testing.T) {
	s := &Constant{Value: map[string]interface{}{"a": 1.0}}
	x := next(t, s, 0).(map[string]interface{})
	x["a"] = 2.0
	assert.Equal(t, map[string]interface{}{"a": 1.0}, next(t, s, 1))
}

func TestWeightedMap(t *testing.T) {
	s, err := NewWeightedMap(map[string]interface{}{"yes": 1.0, "no": 0.0})
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.Equal(t, "yes", next(t, s, i))
	}
}

func TestWeightedCounts(t *testing.T) {
	s, err := NewWeightedCounts(map[string]interface{}{"2": 0.5, "3": 0.5})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Contains(t, []interface{}{2, 3}, next(t, s, i))
	}

	_, err = NewWeightedCounts(map[string]interface{}{"two": 1.0})
	assert.True(t, core.IsConfigurationError(err))
}

func TestWeightedBad(t *testing.T) {
	for name, m := range map[string]map[string]interface{}{
		"negative": {"a": -1.0},
		"zero":     {"a": 0.0},
		"string":   {"a": "lots"},
		"empty":    {},
	} {
		_, err := NewWeightedMap(m)
		assert.True(t, core.IsConfigurationError(err), name)
	}
}

func TestRangeInclusive(t *testing.T) {
	s, err := NewRange(0, 10, 5, NoPrecision)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	var got []interface{}
	for i := 0; i < 4; i++ {
		got = append(got, next(t, s, i))
	}
	assert.Equal(t, []interface{}{0, 5, 10, 0}, got)
}

func TestRangeFloats(t *testing.T) {
	s, err := NewRange(0, 1, 0.25, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 0.75, next(t, s, 3))
}

func TestRangeDown(t *testing.T) {
	s, err := NewRange(3, 1, -1, NoPrecision)
	require.NoError(t, err)
	assert.Equal(t, 2, next(t, s, 1))
}

func TestRangeBad(t *testing.T) {
	_, err := NewRange(0, 10, 0, NoPrecision)
	assert.True(t, core.IsConfigurationError(err))
	_, err = NewRange(0, 10, -1, NoPrecision)
	assert.True(t, core.IsConfigurationError(err))
}

func TestRandomIntRangeInclusive(t *testing.T) {
	s, err := NewRandomIntRange(1, 10)
	require.NoError(t, err)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := next(t, s, i).(int)
		require.True(t, 1 <= n && n <= 10, "%d", n)
		seen[n] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[10])

	_, err = NewRandomIntRange(2, 1)
	assert.True(t, core.IsConfigurationError(err))
}

func TestRandomRangePrecision(t *testing.T) {
	s, err := NewRandomRange(0, 1, 1)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		x := next(t, s, i).(float64)
		assert.Equal(t, Round(x, 1), x)
		assert.True(t, 0 <= x && x <= 1)
	}
}

func TestGeoDegrees(t *testing.T) {
	s, err := NewGeoDegrees(MinLat, MaxLat, MinLat, MaxLat, 4)
	require.NoError(t, err)
	x := next(t, s, 0).(float64)
	assert.True(t, MinLat <= x && x <= MaxLat)

	_, err = NewGeoDegrees(-100, 0, MinLat, MaxLat, 4)
	assert.True(t, core.IsConfigurationError(err))
}

var v4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDVariants(t *testing.T) {
	s, err := NewUUID(4)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, v4, next(t, s, i))
	}

	for _, v := range []int{1, 6, 7} {
		s, err := NewUUID(v)
		require.NoError(t, err)
		u := next(t, s, 0).(string)
		assert.Len(t, u, 36)
		assert.Equal(t, byte('0'+v), u[14])
	}

	_, err = NewUUID(3)
	assert.True(t, core.IsConfigurationError(err))
}

func TestSelectListSubset(t *testing.T) {
	values := []interface{}{"a", "b", "c", "d"}
	s, err := NewSelectListSubset(values, 2, 0, 1, 0, nil)
	require.NoError(t, err)
	xs := next(t, s, 0).([]interface{})
	assert.Len(t, xs, 2)
	assert.NotEqual(t, xs[0], xs[1])

	join := " "
	s, err = NewSelectListSubset(values, 10, 0, 1, 0, &join)
	require.NoError(t, err)
	assert.Len(t, next(t, s, 0).(string), 7)
}
