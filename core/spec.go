package core

import (
	"log"
	"reflect"
	"sort"
)

const (
	// RefsKey is the reserved top-level member holding refs.
	RefsKey = "refs"

	// FieldGroupsKey is the reserved member holding field groups.
	FieldGroupsKey = "field_groups"

	// DefaultType is the type of a Field Spec that doesn't say.
	DefaultType = "values"
)

// Member names of a Field Spec.
const (
	TypeMember    = "type"
	DataMember    = "data"
	ConfigMember  = "config"
	FieldsMember  = "fields"
	RefsMember    = "refs"
	RefMember     = "ref"
	FormulaMember = "formula"

	// FieldOrderMember lists the names of a nested Field Spec's
	// fields in the order they are emitted.  ParseSpec fills it in
	// from the document.
	FieldOrderMember = "field_order"
)

var fieldSpecMembers = map[string]bool{
	TypeMember:       true,
	DataMember:       true,
	ConfigMember:     true,
	FieldsMember:     true,
	RefsMember:       true,
	RefMember:        true,
	FormulaMember:    true,
	FieldOrderMember: true,
	FieldGroupsKey:   true,
}

// Spec is a data spec: named fields, named refs and an optional
// field group policy.
//
// A Spec should be treated as immutable.  Preprocessing passes make
// new Specs.
type Spec struct {
	// Fields maps a field name to its raw Field Spec.
	Fields map[string]interface{}

	// Order is the order of the field names in the source
	// document.
	Order []string

	// Refs maps a ref name to its raw Field Spec.  Refs are never
	// emitted.
	Refs map[string]interface{}

	// FieldGroups is the raw field_groups member (if any).
	FieldGroups interface{}

	// GroupOrder is the document order of named field groups, if
	// FieldGroups is a mapping.
	GroupOrder []string
}

// NewSpec makes a Spec from a parsed document.
//
// The order gives the document order of the top-level keys.  Keys
// not in the order are appended in sorted order.
func NewSpec(doc map[string]interface{}, order []string) (*Spec, error) {
	s := &Spec{
		Fields: make(map[string]interface{}, len(doc)),
		Refs:   make(map[string]interface{}),
	}
	for k, v := range doc {
		switch k {
		case RefsKey:
			switch vv := v.(type) {
			case nil:
			case map[string]interface{}:
				for name, ref := range vv {
					s.Refs[name] = ref
				}
			default:
				return nil, Configf("%s is a %T, not a mapping", RefsKey, v)
			}
		case FieldGroupsKey:
			s.FieldGroups = v
		default:
			s.Fields[k] = v
		}
	}
	s.Order = completeOrder(order, s.Fields)
	return s, nil
}

// OrderedKeys returns the keys of m: first those in order, then the
// rest in sorted order.
func OrderedKeys(order []string, m map[string]interface{}) []string {
	return completeOrder(order, m)
}

// completeOrder keeps the names in order that are in m and adds the
// rest of m's keys in sorted order.
func completeOrder(order []string, m map[string]interface{}) []string {
	acc := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, have := m[k]; have && !seen[k] {
			acc = append(acc, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m)-len(acc))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(acc, rest...)
}

// Keys returns the field names in order.  Names missing from Order
// come last in sorted order.
func (s *Spec) Keys() []string {
	return completeOrder(s.Order, s.Fields)
}

// Copy makes a deep copy of the Spec.
func (s *Spec) Copy() *Spec {
	fields, _ := CopyValue(s.Fields).(map[string]interface{})
	refs, _ := CopyValue(s.Refs).(map[string]interface{})
	if refs == nil {
		refs = make(map[string]interface{})
	}
	acc := &Spec{
		Fields:      fields,
		Order:       append([]string(nil), s.Order...),
		Refs:        refs,
		FieldGroups: CopyValue(s.FieldGroups),
		GroupOrder:  append([]string(nil), s.GroupOrder...),
	}
	if acc.Fields == nil {
		acc.Fields = make(map[string]interface{})
	}
	return acc
}

// ToMap renders the Spec as a document.
func (s *Spec) ToMap() map[string]interface{} {
	acc := make(map[string]interface{}, len(s.Fields)+2)
	for k, v := range s.Fields {
		acc[k] = CopyValue(v)
	}
	if len(s.Refs) > 0 {
		acc[RefsKey] = CopyValue(s.Refs)
	}
	if s.FieldGroups != nil {
		acc[FieldGroupsKey] = CopyValue(s.FieldGroups)
	}
	return acc
}

// Lookup finds a raw Field Spec, first among the fields and then
// among the refs.
func (s *Spec) Lookup(key string) (interface{}, bool) {
	if x, have := s.Fields[key]; have {
		return x, true
	}
	x, have := s.Refs[key]
	return x, have
}

// MergeRefs returns a new mapping with the entries of dst and then
// src.  When both have different entries for a name, src's wins and
// a warning is logged.
func MergeRefs(dst, src map[string]interface{}) map[string]interface{} {
	acc := make(map[string]interface{}, len(dst)+len(src))
	for k, v := range dst {
		acc[k] = v
	}
	for k, v := range src {
		if old, have := acc[k]; have && !reflect.DeepEqual(old, v) {
			log.Printf("warning: ref %q defined more than once; using the last one", k)
		}
		acc[k] = v
	}
	return acc
}

// FieldSpec is the canonical form of a single field's specification.
type FieldSpec struct {
	Type string

	// Data is the data member.  HasData is true if the member
	// was present at all, since a nil Data can be legit.
	Data    interface{}
	HasData bool

	Config map[string]interface{}

	// Fields is a mapping of nested Field Specs (for nested) or a
	// list or mapping of field names (for combine, calculate and
	// templated).
	Fields interface{}

	// Refs is a list or mapping of ref names.
	Refs interface{}

	// Ref is a single ref name.
	Ref string

	// FieldGroups is an optional field_groups member for nested
	// specs.
	FieldGroups interface{}

	// Formula is the formula for calculate.
	Formula string

	// FieldOrder is the order of a nested spec's fields, if known.
	FieldOrder []string
}

// IsFieldSpecMap determines if a mapping is written as a Field Spec
// rather than as a weighted mapping of values.  An empty mapping is
// a Field Spec.
func IsFieldSpecMap(m map[string]interface{}) bool {
	if len(m) == 0 {
		return true
	}
	for k := range m {
		if fieldSpecMembers[k] {
			return true
		}
	}
	return false
}

// AsFieldSpec interprets a raw value as a Field Spec.
//
// A bare list, scalar or weighted mapping becomes the data of a
// Field Spec with no type.
func AsFieldSpec(x interface{}) (*FieldSpec, error) {
	if fs, is := x.(*FieldSpec); is {
		return fs, nil
	}
	m, is := x.(map[string]interface{})
	if !is || !IsFieldSpecMap(m) {
		return &FieldSpec{Data: x, HasData: true}, nil
	}

	fs := &FieldSpec{}
	if t, have := m[TypeMember]; have {
		s, is := t.(string)
		if !is {
			return nil, Configf("type %v (%T) is not a string", t, t)
		}
		fs.Type = s
	}
	if d, have := m[DataMember]; have {
		fs.Data = d
		fs.HasData = true
	}
	if c, have := m[ConfigMember]; have && c != nil {
		cm, is := c.(map[string]interface{})
		if !is {
			return nil, Configf("config %v (%T) is not a mapping", c, c)
		}
		fs.Config = cm
	}
	fs.Fields = m[FieldsMember]
	fs.Refs = m[RefsMember]
	if r, have := m[RefMember]; have {
		s, is := r.(string)
		if !is {
			return nil, Configf("ref %v (%T) is not a string", r, r)
		}
		fs.Ref = s
	}
	fs.FieldGroups = m[FieldGroupsKey]
	if f, have := m[FormulaMember]; have {
		s, is := f.(string)
		if !is {
			return nil, Configf("formula %v (%T) is not a string", f, f)
		}
		fs.Formula = s
	}
	if o, have := m[FieldOrderMember]; have {
		names, err := Names(o)
		if err != nil {
			return nil, Configf("%s: %s", FieldOrderMember, err)
		}
		fs.FieldOrder = names
	}
	return fs, nil
}

// EffectiveType is the Field Spec's type or DefaultType.
func (fs *FieldSpec) EffectiveType() string {
	if fs.Type == "" {
		return DefaultType
	}
	return fs.Type
}

// ToMap renders the Field Spec as a mapping with only the members
// that are set.
func (fs *FieldSpec) ToMap() map[string]interface{} {
	acc := make(map[string]interface{}, 4)
	if fs.Type != "" {
		acc[TypeMember] = fs.Type
	}
	if fs.HasData {
		acc[DataMember] = fs.Data
	}
	if len(fs.Config) > 0 {
		acc[ConfigMember] = fs.Config
	}
	if fs.Fields != nil {
		acc[FieldsMember] = fs.Fields
	}
	if fs.Refs != nil {
		acc[RefsMember] = fs.Refs
	}
	if fs.Ref != "" {
		acc[RefMember] = fs.Ref
	}
	if fs.FieldGroups != nil {
		acc[FieldGroupsKey] = fs.FieldGroups
	}
	if fs.Formula != "" {
		acc[FormulaMember] = fs.Formula
	}
	if fs.FieldOrder != nil {
		order := make([]interface{}, len(fs.FieldOrder))
		for i, name := range fs.FieldOrder {
			order[i] = name
		}
		acc[FieldOrderMember] = order
	}
	return acc
}

// Names interprets a list (or a mapping, in sorted order) of names,
// as used by the fields and refs members of composite types.
func Names(x interface{}) ([]string, error) {
	switch vv := x.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{vv}, nil
	case []string:
		return append([]string(nil), vv...), nil
	case []interface{}:
		acc := make([]string, 0, len(vv))
		for _, y := range vv {
			s, is := y.(string)
			if !is {
				return nil, Configf("name %v (%T) is not a string", y, y)
			}
			acc = append(acc, s)
		}
		return acc, nil
	case map[string]interface{}:
		acc := make([]string, 0, len(vv))
		for k := range vv {
			acc = append(acc, k)
		}
		sort.Strings(acc)
		return acc, nil
	default:
		return nil, Configf("expected a list of names, not %T", x)
	}
}
