package suppliers

import (
	"math"
	"math/rand"

	"github.com/Comcast/datagen/core"
)

// NoPrecision means don't round.
const NoPrecision = -1

// Round rounds x to the given number of decimal places.  A negative
// precision leaves x alone.
func Round(x float64, precision int) float64 {
	if precision < 0 {
		return x
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(x*scale) / scale
}

// Range steps from start to end (inclusive) and then starts over.
//
// If start and step are integers, the values are ints.
type Range struct {
	start, step float64
	n           int
	ints        bool
	precision   int
}

// NewRange makes a Range.  The step can't be zero, and it has to
// point from start toward end.
func NewRange(start, end, step float64, precision int) (*Range, error) {
	if step == 0 {
		return nil, core.Configf("range step can't be zero")
	}
	if (end-start)/step < 0 {
		return nil, core.Configf("range step %v doesn't go from %v to %v", step, start, end)
	}
	n := int(math.Floor((end-start)/step+1e-9)) + 1
	return &Range{
		start:     start,
		step:      step,
		n:         n,
		ints:      core.IsIntegral(start) && core.IsIntegral(step) && precision <= 0,
		precision: precision,
	}, nil
}

// Len is the number of distinct values.
func (s *Range) Len() int {
	return s.n
}

// Next implements core.Supplier.
func (s *Range) Next(iteration int) (interface{}, error) {
	x := s.start + float64(mod(iteration, s.n))*s.step
	if s.ints {
		return int(math.Round(x)), nil
	}
	return Round(x, s.precision), nil
}

// RandomRange returns a random float in [start, end).
type RandomRange struct {
	start, end float64
	precision  int
}

// NewRandomRange makes a RandomRange.
func NewRandomRange(start, end float64, precision int) (*RandomRange, error) {
	if end < start {
		return nil, core.Configf("range end %v is less than start %v", end, start)
	}
	return &RandomRange{
		start:     start,
		end:       end,
		precision: precision,
	}, nil
}

// Next implements core.Supplier.
func (s *RandomRange) Next(int) (interface{}, error) {
	x := s.start + rand.Float64()*(s.end-s.start)
	return Round(x, s.precision), nil
}

// RandomIntRange returns a random int in [start, end].
type RandomIntRange struct {
	start, end int
}

// NewRandomIntRange makes a RandomIntRange.
func NewRandomIntRange(start, end int) (*RandomIntRange, error) {
	if end < start {
		return nil, core.Configf("range end %d is less than start %d", end, start)
	}
	return &RandomIntRange{
		start: start,
		end:   end,
	}, nil
}

// Next implements core.Supplier.
func (s *RandomIntRange) Next(int) (interface{}, error) {
	return s.start + rand.Intn(s.end-s.start+1), nil
}

// FromDistribution draws from a core.Distribution.
type FromDistribution struct {
	Distribution core.Distribution

	// Precision is the number of decimal places.  Use
	// NoPrecision for no rounding.
	Precision int
}

// Next implements core.Supplier.
func (s *FromDistribution) Next(int) (interface{}, error) {
	return Round(s.Distribution.Next(), s.Precision), nil
}
