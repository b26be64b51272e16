package suppliers

import (
	"github.com/Comcast/datagen/core"
)

// Bounds for latitude and longitude in degrees.
const (
	MinLat  = -90.0
	MaxLat  = 90.0
	MinLong = -180.0
	MaxLong = 180.0
)

// NewGeoDegrees makes a RandomRange for degrees within the given
// limits.  The start and end must lie within [min, max].
func NewGeoDegrees(start, end, min, max float64, precision int) (*RandomRange, error) {
	if start < min || max < end {
		return nil, core.Configf("geo range [%v, %v] outside [%v, %v]", start, end, min, max)
	}
	return NewRandomRange(start, end, precision)
}
