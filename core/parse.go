package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jsccast/yaml"
	yamlv2 "gopkg.in/yaml.v2"
)

// ParseSpec parses a spec document.  JSON is tried first.  YAML is
// attempted only after JSON parsing fails.
//
// Numbers end up as float64 regardless of the syntax.  Nested Field
// Specs get a field_order (unless they have one) with the document
// order of their fields.
func ParseSpec(bs []byte) (*Spec, error) {
	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 {
		return nil, Configf("empty spec")
	}

	var (
		doc     map[string]interface{}
		ordered yamlv2.MapSlice
	)

	jsErr := json.Unmarshal(bs, &doc)
	if jsErr == nil {
		ordered, _ = orderedJSON(json.NewDecoder(bytes.NewReader(bs))).(yamlv2.MapSlice)
	} else {
		var x interface{}
		if err := yaml.Unmarshal(bs, &x); err != nil {
			return nil, Configf("spec is neither JSON (%s) nor YAML (%s)", jsErr, err)
		}
		y, err := Canonicalize(x)
		if err != nil {
			return nil, Configf("spec YAML: %s", err)
		}
		m, is := y.(map[string]interface{})
		if !is {
			return nil, Configf("spec is a %T, not a mapping", y)
		}
		doc = m
		if err := yamlv2.Unmarshal(bs, &ordered); err != nil {
			ordered = nil
		}
	}

	addFieldOrders(doc, ordered)
	order, groupOrder := keyOrders(ordered)

	s, err := NewSpec(doc, order)
	if err != nil {
		return nil, err
	}
	s.GroupOrder = groupOrder
	return s, nil
}

// LoadSpec reads and parses the spec at the given path.
func LoadSpec(filename string) (*Spec, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ResourceError{Resource: filename, Err: err}
	}
	s, err := ParseSpec(bs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// orderedJSON reads the next JSON value with objects as MapSlices.
// It returns nil if the JSON is bad.
func orderedJSON(dec *json.Decoder) interface{} {
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	d, is := tok.(json.Delim)
	if !is {
		return tok
	}
	switch d {
	case '{':
		var acc yamlv2.MapSlice
		for dec.More() {
			k, err := dec.Token()
			if err != nil {
				return nil
			}
			acc = append(acc, yamlv2.MapItem{Key: k, Value: orderedJSON(dec)})
		}
		dec.Token()
		return acc
	case '[':
		var acc []interface{}
		for dec.More() {
			acc = append(acc, orderedJSON(dec))
		}
		dec.Token()
		return acc
	}
	return nil
}

// keyOrders returns the order of the top-level keys and of the keys
// of the field_groups member (if it's a mapping).
func keyOrders(ms yamlv2.MapSlice) (order []string, groupOrder []string) {
	for _, item := range ms {
		k := fmt.Sprintf("%v", item.Key)
		order = append(order, k)
		if k != FieldGroupsKey {
			continue
		}
		if groups, is := item.Value.(yamlv2.MapSlice); is {
			groupOrder = mapSliceKeys(groups)
		}
	}
	return order, groupOrder
}

func mapSliceKeys(ms yamlv2.MapSlice) []string {
	acc := make([]string, 0, len(ms))
	for _, item := range ms {
		acc = append(acc, fmt.Sprintf("%v", item.Key))
	}
	return acc
}

func mapSliceGet(ms yamlv2.MapSlice, key string) interface{} {
	for _, item := range ms {
		if fmt.Sprintf("%v", item.Key) == key {
			return item.Value
		}
	}
	return nil
}

// nestedType is the type that has a field_order.
const nestedType = "nested"

// isNested reports whether the (perhaps shorthand) key and its value
// make a nested Field Spec.
func isNested(key string, m map[string]interface{}) bool {
	if t, is := m[TypeMember].(string); is {
		return t == nestedType
	}
	head := key
	if i := strings.IndexByte(head, '?'); 0 <= i {
		head = head[:i]
	}
	i := strings.IndexByte(head, ':')
	return 0 <= i && head[i+1:] == nestedType
}

// addFieldOrders walks the document and its ordered twin and gives
// every nested Field Spec without a field_order the document order
// of its fields.
func addFieldOrders(doc map[string]interface{}, ordered yamlv2.MapSlice) {
	for _, item := range ordered {
		k := fmt.Sprintf("%v", item.Key)
		sub, is := item.Value.(yamlv2.MapSlice)
		if !is {
			continue
		}
		m, is := doc[k].(map[string]interface{})
		if !is {
			continue
		}
		if _, have := m[FieldOrderMember]; !have && isNested(k, m) {
			if fields, is := mapSliceGet(sub, FieldsMember).(yamlv2.MapSlice); is {
				if _, is := m[FieldsMember].(map[string]interface{}); is {
					names := mapSliceKeys(fields)
					order := make([]interface{}, len(names))
					for i, name := range names {
						order[i] = name
					}
					m[FieldOrderMember] = order
				}
			}
		}
		addFieldOrders(m, sub)
	}
}
