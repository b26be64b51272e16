package suppliers

import (
	"github.com/Comcast/datagen/core"

	"github.com/google/uuid"
)

// UUID generates UUID strings of a given version.
type UUID struct {
	gen func() (uuid.UUID, error)
}

// NewUUID makes a UUID supplier.  The supported variants are 1
// (time and node), 4 (random), 6 (reordered time) and 7 (Unix epoch
// time).
func NewUUID(variant int) (*UUID, error) {
	var gen func() (uuid.UUID, error)
	switch variant {
	case 1:
		gen = uuid.NewUUID
	case 4:
		gen = uuid.NewRandom
	case 6:
		gen = uuid.NewV6
	case 7:
		gen = uuid.NewV7
	default:
		return nil, core.Configf("unsupported uuid variant %d", variant)
	}
	return &UUID{
		gen: gen,
	}, nil
}

// Next implements core.Supplier.
func (s *UUID) Next(int) (interface{}, error) {
	u, err := s.gen()
	if err != nil {
		return nil, core.Runtimef("uuid: %s", err)
	}
	return u.String(), nil
}
