package core

import (
	"bytes"
	"encoding/json"
)

// Record is one generated record.
type Record struct {
	// Iteration is the (zero-based) iteration that produced this
	// record.
	Iteration int `json:"iteration"`

	// Group is the name of the field group used, if any.
	Group string `json:"group,omitempty"`

	// Keys gives the order of the fields.
	Keys []string `json:"keys"`

	// Values maps field names to values.
	Values map[string]interface{} `json:"values"`

	// Orders gives the key order of the objects in a field's value,
	// if its Supplier knows one.
	Orders map[string]*KeyOrder `json:"-"`
}

// KeyOrder is the order of the keys of an object, and of the objects
// in its values.  An object in a list gets the list's KeyOrder.
type KeyOrder struct {
	Keys []string
	Sub  map[string]*KeyOrder
}

// Of returns the key order for the named value, which can be nil.
func (o *KeyOrder) Of(key string) *KeyOrder {
	if o == nil {
		return nil
	}
	return o.Sub[key]
}

// SetOrder records the key order of a field's objects.
func (r *Record) SetOrder(key string, o *KeyOrder) {
	if o == nil {
		return
	}
	if r.Orders == nil {
		r.Orders = make(map[string]*KeyOrder)
	}
	r.Orders[key] = o
}

// Order returns the key order of a field's objects, which can be
// nil.
func (r *Record) Order(key string) *KeyOrder {
	return r.Orders[key]
}

// NewRecord makes an empty Record.
func NewRecord(iteration int, group string, n int) *Record {
	return &Record{
		Iteration: iteration,
		Group:     group,
		Keys:      make([]string, 0, n),
		Values:    make(map[string]interface{}, n),
	}
}

// Set adds a field value.  Setting a key again replaces the value
// without changing the order.
func (r *Record) Set(key string, value interface{}) {
	if _, have := r.Values[key]; !have {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = value
}

// MarshalOrderedJSON writes the record's values as a JSON object
// with the keys in order.
func (r *Record) MarshalOrderedJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if 0 < i {
			buf.WriteByte(',')
		}
		kjs, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kjs)
		buf.WriteByte(':')
		if err := writeOrderedJSON(&buf, r.Values[k], r.Order(k)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalOrderedValue renders a value as JSON with the keys of its
// objects in the given order.  Keys missing from the order come last
// in sorted order.
func MarshalOrderedValue(v interface{}, o *KeyOrder) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeOrderedJSON(&buf, v, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOrderedJSON(buf *bytes.Buffer, v interface{}, o *KeyOrder) error {
	if o != nil {
		switch vv := v.(type) {
		case map[string]interface{}:
			buf.WriteByte('{')
			for i, k := range OrderedKeys(o.Keys, vv) {
				if 0 < i {
					buf.WriteByte(',')
				}
				kjs, err := json.Marshal(k)
				if err != nil {
					return err
				}
				buf.Write(kjs)
				buf.WriteByte(':')
				if err := writeOrderedJSON(buf, vv[k], o.Of(k)); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
			return nil
		case []interface{}:
			buf.WriteByte('[')
			for i, x := range vv {
				if 0 < i {
					buf.WriteByte(',')
				}
				if err := writeOrderedJSON(buf, x, o); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
			return nil
		}
	}
	js, err := json.Marshal(&v)
	if err != nil {
		return err
	}
	buf.Write(js)
	return nil
}
