package preprocess

import (
	"github.com/Comcast/datagen/core"
)

// Nested runs the shorthand, csv_select and nested passes inside the
// fields of every nested Field Spec, all the way down.  Refs those
// passes make (and refs written inside the nested fields) are
// hoisted into the root refs.  If two refs have the same name, the
// last one wins.
func Nested(s *core.Spec) (*core.Spec, error) {
	acc := s.Copy()

	hoisted := make(map[string]interface{})
	for _, name := range acc.Keys() {
		x, refs, err := normalizeNested(name, acc.Fields[name])
		if err != nil {
			return nil, err
		}
		acc.Fields[name] = x
		hoisted = core.MergeRefs(hoisted, refs)
	}
	for _, name := range sortedKeys(acc.Refs) {
		x, refs, err := normalizeNested(core.RefsKey+"."+name, acc.Refs[name])
		if err != nil {
			return nil, err
		}
		acc.Refs[name] = x
		hoisted = core.MergeRefs(hoisted, refs)
	}

	acc.Refs = core.MergeRefs(acc.Refs, hoisted)
	return acc, nil
}

// normalizeNested returns the canonical Field Spec and the refs to
// hoist.
func normalizeNested(key string, x interface{}) (interface{}, map[string]interface{}, error) {
	if typeOf(x) != NestedType {
		return x, nil, nil
	}
	fm := x.(map[string]interface{})
	fields, is := fm[core.FieldsMember].(map[string]interface{})
	if !is {
		return x, nil, nil
	}

	order, err := core.Names(fm[core.FieldOrderMember])
	if err != nil {
		return nil, nil, core.KeyConfigf(key, "%s: %s", core.FieldOrderMember, err)
	}
	sub, err := core.NewSpec(fields, order)
	if err != nil {
		return nil, nil, core.KeyConfigf(key, "nested fields: %s", err)
	}
	for _, p := range []core.Pass{Shorthand, CSVSelect, Nested} {
		if sub, err = p(sub); err != nil {
			return nil, nil, err
		}
	}

	acc := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		acc[k] = v
	}
	acc[core.FieldsMember] = sub.Fields
	keys := sub.Keys()
	fieldOrder := make([]interface{}, len(keys))
	for i, name := range keys {
		fieldOrder[i] = name
	}
	acc[core.FieldOrderMember] = fieldOrder
	if sub.FieldGroups != nil {
		if _, have := acc[core.FieldGroupsKey]; !have {
			acc[core.FieldGroupsKey] = sub.FieldGroups
		}
	}
	return acc, sub.Refs, nil
}
