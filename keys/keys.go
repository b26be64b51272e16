// Package keys decides which fields participate in each record.
//
// Without field groups, every record has every field.  With field
// groups, each record gets the fields of one group, either drawn at
// random (when the group keys are all numbers, which are taken as
// weights) or in rotation.
package keys

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/Comcast/datagen/core"
)

// Provider gives the fields for the next record.
type Provider interface {
	// Get returns the name of the field group (if any) and the
	// names of its fields.  Callers may modify the returned
	// slice.
	Get() (group string, fields []string, err error)
}

// New makes a Provider for the given field names and raw
// field_groups member.
//
// A nil groups gives AllFields.  A mapping with all-numeric keys
// gives Weighted.  A list of lists, or a mapping with non-numeric
// keys, gives Rotating; the groupOrder (if any) gives the order of
// the named groups, which otherwise rotate in sorted order.
func New(fields []string, groups interface{}, groupOrder []string) (Provider, error) {
	switch vv := groups.(type) {
	case nil:
		return NewAllFields(fields), nil
	case []interface{}:
		names := make([]string, len(vv))
		m := make(map[string][]string, len(vv))
		for i, g := range vv {
			fs, err := core.Names(g)
			if err != nil {
				return nil, core.KeyConfigf(core.FieldGroupsKey, "group %d: %s", i, err)
			}
			names[i] = strconv.Itoa(i)
			m[names[i]] = fs
		}
		return NewRotating(names, m)
	case map[string]interface{}:
		m := make(map[string][]string, len(vv))
		numeric := 0 < len(vv)
		for name, g := range vv {
			fs, err := groupFields(g)
			if err != nil {
				return nil, core.KeyConfigf(core.FieldGroupsKey, "group %s: %s", name, err)
			}
			m[name] = fs
			if _, err := strconv.ParseFloat(name, 64); err != nil {
				numeric = false
			}
		}
		names := orderedNames(m, groupOrder)
		if numeric {
			return NewWeighted(names, m)
		}
		return NewRotating(names, m)
	default:
		return nil, core.KeyConfigf(core.FieldGroupsKey, "expected a list or mapping, not %T", groups)
	}
}

// groupFields accepts a list of names or a mapping with a "fields"
// member.
func groupFields(x interface{}) ([]string, error) {
	if m, is := x.(map[string]interface{}); is {
		if fs, have := m[core.FieldsMember]; have {
			return core.Names(fs)
		}
	}
	return core.Names(x)
}

func orderedNames(m map[string][]string, order []string) []string {
	acc := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range order {
		if _, have := m[name]; have && !seen[name] {
			acc = append(acc, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(acc, rest...)
}

// Groups returns every field name any of the Provider's groups can
// return.
func Groups(p Provider) map[string][]string {
	switch vv := p.(type) {
	case *AllFields:
		return map[string][]string{"": vv.Fields()}
	case *Weighted:
		return copyGroups(vv.groups)
	case *Rotating:
		return copyGroups(vv.groups)
	default:
		return nil
	}
}

func copyGroups(m map[string][]string) map[string][]string {
	acc := make(map[string][]string, len(m))
	for k, v := range m {
		acc[k] = append([]string(nil), v...)
	}
	return acc
}

// AllFields returns the same fields every time.
type AllFields struct {
	fields []string
}

// NewAllFields makes an AllFields.
func NewAllFields(fields []string) *AllFields {
	return &AllFields{
		fields: append([]string(nil), fields...),
	}
}

// Fields returns a copy of the fields.
func (p *AllFields) Fields() []string {
	return append([]string(nil), p.fields...)
}

// Get implements Provider.
func (p *AllFields) Get() (string, []string, error) {
	return "", p.Fields(), nil
}

// Weighted draws a group at random.  A group's name is its weight.
type Weighted struct {
	groups map[string][]string

	// draw picks a group name.
	draw func() string
}

// NewWeighted makes a Weighted.  Every name must parse as a
// non-negative number, and at least one must be positive.
func NewWeighted(names []string, groups map[string][]string) (*Weighted, error) {
	var (
		cum   = make([]float64, len(names))
		total float64
	)
	for i, name := range names {
		w, err := strconv.ParseFloat(name, 64)
		if err != nil || w < 0 {
			return nil, core.KeyConfigf(core.FieldGroupsKey, "weight %q is not a non-negative number", name)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, core.KeyConfigf(core.FieldGroupsKey, "weights sum to %v", total)
	}
	names = append([]string(nil), names...)
	return &Weighted{
		groups: copyGroups(groups),
		draw: func() string {
			r := rand.Float64() * total
			i := sort.Search(len(cum), func(i int) bool { return r < cum[i] })
			if i == len(cum) {
				i = len(cum) - 1
			}
			return names[i]
		},
	}, nil
}

// Get implements Provider.
func (p *Weighted) Get() (string, []string, error) {
	name := p.draw()
	fields, have := p.groups[name]
	if !have {
		return "", nil, core.Runtimef("field group %q not found", name)
	}
	return name, append([]string(nil), fields...), nil
}

// Rotating returns each group in turn.
type Rotating struct {
	names  []string
	groups map[string][]string
	next   int
}

// NewRotating makes a Rotating that cycles through the groups in the
// order of the given names.
func NewRotating(names []string, groups map[string][]string) (*Rotating, error) {
	if len(names) == 0 {
		return nil, core.KeyConfigf(core.FieldGroupsKey, "no field groups")
	}
	for _, name := range names {
		if _, have := groups[name]; !have {
			return nil, core.KeyConfigf(core.FieldGroupsKey, "field group %q not defined", name)
		}
	}
	return &Rotating{
		names:  append([]string(nil), names...),
		groups: copyGroups(groups),
	}, nil
}

// Get implements Provider.
func (p *Rotating) Get() (string, []string, error) {
	name := p.names[p.next]
	p.next = (p.next + 1) % len(p.names)
	return name, append([]string(nil), p.groups[name]...), nil
}
