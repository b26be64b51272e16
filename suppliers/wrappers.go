package suppliers

import (
	"math"

	"github.com/Comcast/datagen/core"
)

// CountOf gets a count from a count Supplier.  A nil Supplier means
// one.  Fractional counts are rounded down, and negative counts are
// zero.
func CountOf(count core.Supplier, iteration int) (int, error) {
	if count == nil {
		return 1, nil
	}
	x, err := count.Next(iteration)
	if err != nil {
		return 0, err
	}
	f, ok := core.AsFloat(x)
	if !ok {
		return 0, core.Runtimef("count %v (%T) is not a number", x, x)
	}
	if f < 0 {
		return 0, nil
	}
	return int(math.Floor(f)), nil
}

// eachElement applies f to x or, if x is a list, to each of its
// elements.
func eachElement(x interface{}, f func(interface{}) (interface{}, error)) (interface{}, error) {
	xs, is := x.([]interface{})
	if !is {
		return f(x)
	}
	acc := make([]interface{}, len(xs))
	for i, y := range xs {
		z, err := f(y)
		if err != nil {
			return nil, err
		}
		acc[i] = z
	}
	return acc, nil
}

// Cast casts the values of another Supplier.  Lists are cast element
// by element.
type Cast struct {
	Wrapped core.Supplier
	Caster  core.Caster
}

// Next implements core.Supplier.
func (s *Cast) Next(iteration int) (interface{}, error) {
	x, err := s.Wrapped.Next(iteration)
	if err != nil {
		return nil, err
	}
	return eachElement(x, s.Caster.Cast)
}

// Decorated adds a prefix, a suffix and quotes to the values of
// another Supplier.  Lists are decorated element by element.
type Decorated struct {
	Wrapped core.Supplier
	Prefix  string
	Suffix  string
	Quote   string
}

// Next implements core.Supplier.
func (s *Decorated) Next(iteration int) (interface{}, error) {
	x, err := s.Wrapped.Next(iteration)
	if err != nil {
		return nil, err
	}
	return eachElement(x, func(y interface{}) (interface{}, error) {
		return s.Quote + s.Prefix + core.Stringify(y) + s.Suffix + s.Quote, nil
	})
}

type buffered struct {
	iteration int
	value     interface{}
}

// Buffered remembers the last few values of another Supplier so that
// recent iterations can be read again and get the same value.
//
// Iterations older than the window, or earlier than the latest
// iteration without being in the window, are RuntimeErrors.
type Buffered struct {
	wrapped core.Supplier
	size    int
	window  []buffered
}

// NewBuffered makes a Buffered that remembers size values.
func NewBuffered(wrapped core.Supplier, size int) (*Buffered, error) {
	if size <= 0 {
		return nil, core.Configf("buffer size %d isn't positive", size)
	}
	return &Buffered{
		wrapped: wrapped,
		size:    size,
		window:  make([]buffered, 0, size),
	}, nil
}

// Next implements core.Supplier.
func (s *Buffered) Next(iteration int) (interface{}, error) {
	for _, b := range s.window {
		if b.iteration == iteration {
			return core.CopyValue(b.value), nil
		}
	}
	if n := len(s.window); 0 < n && iteration < s.window[n-1].iteration {
		return nil, core.Runtimef("iteration %d is not in the buffer [%d, %d]",
			iteration, s.window[0].iteration, s.window[n-1].iteration)
	}

	x, err := s.wrapped.Next(iteration)
	if err != nil {
		return nil, err
	}
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, buffered{iteration, x})
	return core.CopyValue(x), nil
}

// Multiple calls another Supplier several times per iteration and
// returns the values as a list.  The kth value is for iteration+k.
type Multiple struct {
	Wrapped core.Supplier
	Count   core.Supplier
}

// Next implements core.Supplier.
func (s *Multiple) Next(iteration int) (interface{}, error) {
	n, err := CountOf(s.Count, iteration)
	if err != nil {
		return nil, err
	}
	acc := make([]interface{}, n)
	for k := range acc {
		if acc[k], err = s.Wrapped.Next(iteration + k); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
