package preprocess

import (
	"net/url"
	"strings"

	"github.com/Comcast/datagen/core"
)

// IsShorthand reports whether a key carries a type or params.
func IsShorthand(key string) bool {
	return strings.ContainsAny(key, ":?")
}

// ExpandKey expands a shorthand key "name:type?p=v&q=w" and its value
// into the field name and a canonical Field Spec.
//
// The params, URL-decoded, are merged into the value's config and
// win over what's there.  A value that isn't written as a Field Spec
// becomes its data.  A key that isn't shorthand comes back as is.
func ExpandKey(key string, value interface{}) (string, interface{}, error) {
	if !IsShorthand(key) {
		return key, value, nil
	}

	head, query := key, ""
	if i := strings.IndexByte(key, '?'); 0 <= i {
		head, query = key[:i], key[i+1:]
	}
	name, typ := head, ""
	if i := strings.IndexByte(head, ':'); 0 <= i {
		name, typ = head[:i], head[i+1:]
	}
	if name == "" {
		return "", nil, core.KeyConfigf(key, "shorthand key has no field name")
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return "", nil, core.KeyConfigf(key, "bad params: %s", err)
	}

	fm := fieldSpecMap(value)
	if typ != "" {
		fm[core.TypeMember] = typ
	}
	if 0 < len(params) {
		cfg, err := configOf(key, fm)
		if err != nil {
			return "", nil, err
		}
		for k, vs := range params {
			cfg[k] = vs[len(vs)-1]
		}
		fm[core.ConfigMember] = cfg
	}
	return name, fm, nil
}

func expandKeys(m map[string]interface{}, order []string) (map[string]interface{}, []string, error) {
	acc := make(map[string]interface{}, len(m))
	accOrder := make([]string, 0, len(order))
	for _, key := range order {
		name, fs, err := ExpandKey(key, m[key])
		if err != nil {
			return nil, nil, err
		}
		if _, have := acc[name]; have {
			return nil, nil, core.KeyConfigf(name, "defined more than once")
		}
		acc[name] = fs
		accOrder = append(accOrder, name)
	}
	return acc, accOrder, nil
}

// Shorthand expands the shorthand keys of fields and refs.  Field
// order is kept.  Two keys that expand to the same name are a
// ConfigurationError.
func Shorthand(s *core.Spec) (*core.Spec, error) {
	acc := s.Copy()

	fields, order, err := expandKeys(acc.Fields, acc.Keys())
	if err != nil {
		return nil, err
	}
	refs, _, err := expandKeys(acc.Refs, sortedKeys(acc.Refs))
	if err != nil {
		return nil, err
	}

	acc.Fields, acc.Order, acc.Refs = fields, order, refs
	return acc, nil
}
