package suppliers

import (
	"strings"

	"github.com/Comcast/datagen/core"
)

// Combine joins the values of several Suppliers, in order, either
// into a string or into a list.
type Combine struct {
	suppliers []core.Supplier
	joinWith  string
	asList    bool
}

// NewCombine makes a Combine.
func NewCombine(suppliers []core.Supplier, joinWith string, asList bool) (*Combine, error) {
	if len(suppliers) == 0 {
		return nil, core.Configf("nothing to combine")
	}
	return &Combine{
		suppliers: suppliers,
		joinWith:  joinWith,
		asList:    asList,
	}, nil
}

// Next implements core.Supplier.
func (s *Combine) Next(iteration int) (interface{}, error) {
	values := make([]interface{}, len(s.suppliers))
	for i, sub := range s.suppliers {
		x, err := sub.Next(iteration)
		if err != nil {
			return nil, err
		}
		values[i] = x
	}
	if s.asList {
		return values, nil
	}
	ss := make([]string, len(values))
	for i, x := range values {
		ss[i] = core.Stringify(x)
	}
	return strings.Join(ss, s.joinWith), nil
}

// CombineList uses each of its Combines in turn.
//
// The rotation advances on every call regardless of the iteration.
type CombineList struct {
	combines []core.Supplier
	next     int
}

// NewCombineList makes a CombineList.
func NewCombineList(combines []core.Supplier) (*CombineList, error) {
	if len(combines) == 0 {
		return nil, core.Configf("no lists of refs to combine")
	}
	return &CombineList{
		combines: combines,
	}, nil
}

// Next implements core.Supplier.
func (s *CombineList) Next(iteration int) (interface{}, error) {
	c := s.combines[s.next]
	s.next = (s.next + 1) % len(s.combines)
	return c.Next(iteration)
}

// WeightedRef picks one of several named Suppliers with a key
// Supplier.
type WeightedRef struct {
	keys core.Supplier
	refs map[string]core.Supplier
}

// NewWeightedRef makes a WeightedRef.
func NewWeightedRef(keys core.Supplier, refs map[string]core.Supplier) *WeightedRef {
	return &WeightedRef{
		keys: keys,
		refs: refs,
	}
}

// Next implements core.Supplier.
func (s *WeightedRef) Next(iteration int) (interface{}, error) {
	k, err := s.keys.Next(iteration)
	if err != nil {
		return nil, err
	}
	name := core.Stringify(k)
	sub, have := s.refs[name]
	if !have {
		return nil, core.Runtimef("weighted ref %q has no supplier", name)
	}
	return sub.Next(iteration)
}
