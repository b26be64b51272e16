package suppliers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Comcast/datagen/core"
)

// SelectListSubset picks a random subset of a list.  The size of the
// subset is drawn from a normal distribution and clamped to [Min,
// Max].
type SelectListSubset struct {
	values       []interface{}
	mean, stddev float64
	min, max     int

	// joinWith, if not nil, makes the subset a string.
	joinWith *string
}

// NewSelectListSubset makes a SelectListSubset.
func NewSelectListSubset(values []interface{}, mean, stddev float64, min, max int, joinWith *string) (*SelectListSubset, error) {
	if len(values) == 0 {
		return nil, core.Configf("empty list to select from")
	}
	if stddev < 0 {
		return nil, core.Configf("negative stddev %v", stddev)
	}
	if min < 0 {
		min = 0
	}
	if max <= 0 || len(values) < max {
		max = len(values)
	}
	if max < min {
		return nil, core.Configf("min %d is greater than max %d", min, max)
	}
	return &SelectListSubset{
		values:   values,
		mean:     mean,
		stddev:   stddev,
		min:      min,
		max:      max,
		joinWith: joinWith,
	}, nil
}

// Next implements core.Supplier.
func (s *SelectListSubset) Next(int) (interface{}, error) {
	n := int(math.Round(rand.NormFloat64()*s.stddev + s.mean))
	if n < s.min {
		n = s.min
	}
	if s.max < n {
		n = s.max
	}

	acc := make([]interface{}, n)
	for i, j := range rand.Perm(len(s.values))[:n] {
		acc[i] = core.CopyValue(s.values[j])
	}

	if s.joinWith == nil {
		return acc, nil
	}
	ss := make([]string, n)
	for i, x := range acc {
		ss[i] = core.Stringify(x)
	}
	return strings.Join(ss, *s.joinWith), nil
}
