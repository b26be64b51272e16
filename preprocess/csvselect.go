package preprocess

import (
	"sort"

	"github.com/Comcast/datagen/core"
)

// ConfigRefSuffix is appended to a csv_select field's name to name
// the config_ref its columns share.
const ConfigRefSuffix = "_config_ref"

// Member names in a csv_select column.
const (
	ColMember    = "col"
	ColumnConfig = "column"
)

type column struct {
	name   string
	col    interface{}
	num    float64
	isNum  bool
	config map[string]interface{}
}

// CSVSelect expands each csv_select field into one csv field per
// column.  The columns share a new config_ref ref that holds the
// csv_select field's config.  Per-column settings override the
// shared config.
//
// For example
//
//	{"info": {"type": "csv_select",
//	          "data": {"id": 1, "age": {"col": 3, "cast": "int"}},
//	          "config": {"datafile": "people.csv"}}}
//
// becomes
//
//	{"id":  {"type": "csv", "config": {"column": 1, "config_ref": "info_config_ref"}},
//	 "age": {"type": "csv", "config": {"column": 3, "cast": "int", "config_ref": "info_config_ref"}},
//	 "refs": {"info_config_ref": {"type": "config_ref", "config": {"datafile": "people.csv"}}}}
func CSVSelect(s *core.Spec) (*core.Spec, error) {
	acc := s.Copy()
	fields, order, refs, err := expandCSVSelect(acc.Fields, acc.Keys())
	if err != nil {
		return nil, err
	}
	acc.Fields, acc.Order = fields, order
	acc.Refs = core.MergeRefs(acc.Refs, refs)
	return acc, nil
}

func expandCSVSelect(m map[string]interface{}, order []string) (map[string]interface{}, []string, map[string]interface{}, error) {
	var (
		fields   = make(map[string]interface{}, len(m))
		accOrder = make([]string, 0, len(order))
		refs     = make(map[string]interface{})
	)

	add := func(name string, x interface{}) error {
		if _, have := fields[name]; have {
			return core.KeyConfigf(name, "defined more than once")
		}
		fields[name] = x
		accOrder = append(accOrder, name)
		return nil
	}

	for _, name := range order {
		x := m[name]
		if typeOf(x) != CSVSelectType {
			if err := add(name, x); err != nil {
				return nil, nil, nil, err
			}
			continue
		}

		fm := x.(map[string]interface{})
		shared, err := configOf(name, fm)
		if err != nil {
			return nil, nil, nil, err
		}
		cols, err := selectColumns(name, fm[core.DataMember])
		if err != nil {
			return nil, nil, nil, err
		}

		refName := name + ConfigRefSuffix
		refs[refName] = map[string]interface{}{
			core.TypeMember:   ConfigRefType,
			core.ConfigMember: shared,
		}
		for _, c := range cols {
			c.config[core.ConfigRefKey] = refName
			if err := add(c.name, map[string]interface{}{
				core.TypeMember:   CSVType,
				core.ConfigMember: c.config,
			}); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	return fields, accOrder, refs, nil
}

// selectColumns reads the data of a csv_select.  Columns are ordered
// by column number.  Columns named by header come last in name order.
func selectColumns(key string, data interface{}) ([]*column, error) {
	m, is := data.(map[string]interface{})
	if !is || len(m) == 0 {
		return nil, core.KeyConfigf(key, "csv_select data must map field names to columns")
	}

	cols := make([]*column, 0, len(m))
	for _, name := range sortedKeys(m) {
		c := &column{
			name:   name,
			config: make(map[string]interface{}),
		}
		switch vv := m[name].(type) {
		case map[string]interface{}:
			for k, v := range vv {
				if k == ColMember {
					continue
				}
				c.config[k] = core.CopyValue(v)
			}
			col, have := vv[ColMember]
			if !have {
				col, have = vv[ColumnConfig]
			}
			if !have {
				return nil, core.KeyConfigf(key, "csv_select column %q has no %s", name, ColMember)
			}
			c.col = col
		case float64, string:
			c.col = vv
		default:
			return nil, core.KeyConfigf(key, "csv_select column %q is a %T", name, vv)
		}
		c.config[ColumnConfig] = c.col
		if f, ok := c.col.(float64); ok {
			c.num, c.isNum = f, true
		}
		cols = append(cols, c)
	}

	sort.SliceStable(cols, func(i, j int) bool {
		a, b := cols[i], cols[j]
		if a.isNum != b.isNum {
			return a.isNum
		}
		return a.isNum && a.num < b.num
	})
	return cols, nil
}
