package suppliers

import (
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/keys"
)

// Nested builds objects from named Suppliers.
//
// The number of objects per call comes from a count Supplier.  With
// a count of zero, Next returns nil (or an empty list if asList).
// With a count of one, Next returns the object (or a list of one if
// asList).  Otherwise Next returns a list of objects, where the kth
// object is built for iteration+k.
//
// Every object asks the key provider for its fields, so each object
// can have a different field group.
type Nested struct {
	// Order is the order of the fields in the objects.  Fields
	// missing from it come last in sorted order.
	Order []string

	fields map[string]core.Supplier
	keys   keys.Provider
	count  core.Supplier
	asList bool
}

// NewNested makes a Nested.  A nil count means one object per call.
func NewNested(fields map[string]core.Supplier, kp keys.Provider, count core.Supplier, asList bool) (*Nested, error) {
	for group, names := range keys.Groups(kp) {
		for _, name := range names {
			if _, have := fields[name]; !have {
				if group == "" {
					return nil, core.Configf("nested field %q not defined", name)
				}
				return nil, core.Configf("field group %q names undefined nested field %q", group, name)
			}
		}
	}
	return &Nested{
		fields: fields,
		keys:   kp,
		count:  count,
		asList: asList,
	}, nil
}

// KeyOrder implements core.Ordered.
func (s *Nested) KeyOrder() *core.KeyOrder {
	o := &core.KeyOrder{
		Keys: s.Order,
	}
	for name, sub := range s.fields {
		if so, is := sub.(core.Ordered); is {
			if o.Sub == nil {
				o.Sub = make(map[string]*core.KeyOrder)
			}
			o.Sub[name] = so.KeyOrder()
		}
	}
	return o
}

// HandlesCount implements core.CountHandler.
func (s *Nested) HandlesCount() bool {
	return true
}

func (s *Nested) one(iteration int) (map[string]interface{}, error) {
	_, names, err := s.keys.Get()
	if err != nil {
		return nil, err
	}
	acc := make(map[string]interface{}, len(names))
	for _, name := range names {
		sub, have := s.fields[name]
		if !have {
			return nil, core.Runtimef("nested field %q has no supplier", name)
		}
		x, err := sub.Next(iteration)
		if err != nil {
			return nil, err
		}
		acc[name] = x
	}
	return acc, nil
}

// Next implements core.Supplier.
func (s *Nested) Next(iteration int) (interface{}, error) {
	n, err := CountOf(s.count, iteration)
	if err != nil {
		return nil, err
	}
	switch {
	case n == 0 && !s.asList:
		return nil, nil
	case n == 1 && !s.asList:
		return s.one(iteration)
	}
	acc := make([]interface{}, n)
	for k := range acc {
		m, err := s.one(iteration + k)
		if err != nil {
			return nil, err
		}
		acc[k] = m
	}
	return acc, nil
}
