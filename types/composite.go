package types

import (
	"fmt"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/interpreters"
	"github.com/Comcast/datagen/keys"
	"github.com/Comcast/datagen/loader"
	"github.com/Comcast/datagen/suppliers"
)

// sourceNames returns the names in the refs member, or else in the
// fields member.
func sourceNames(typ string, fs *core.FieldSpec) ([]string, error) {
	x := fs.Refs
	if x == nil {
		x = fs.Fields
	}
	if x == nil {
		return nil, core.Configf("%s needs refs or fields", typ)
	}
	return core.Names(x)
}

func getAll(l core.Loader, names []string) ([]core.Supplier, error) {
	acc := make([]core.Supplier, len(names))
	for i, name := range names {
		s, err := l.Get(name)
		if err != nil {
			return nil, err
		}
		acc[i] = s
	}
	return acc, nil
}

// Combine joins the values of its refs (or fields) into a string
// with join_with, or into a list with as_list.
func Combine(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	names, err := sourceNames("combine", fs)
	if err != nil {
		return nil, err
	}
	subs, err := getAll(l, names)
	if err != nil {
		return nil, err
	}
	p := paramsOf(fs, l)
	asList, err := p.Bool(loader.AsListConfig, "", false)
	if err != nil {
		return nil, err
	}
	return suppliers.NewCombine(subs, p.String("join_with", CombineJoinWithDefault, ""), asList)
}

// CombineList is a combine over each of several lists of refs in
// turn.
func CombineList(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	lists, is := fs.Refs.([]interface{})
	if !is || len(lists) == 0 {
		return nil, core.Configf("combine-list needs a list of lists of refs, not %v", fs.Refs)
	}
	p := paramsOf(fs, l)
	asList, err := p.Bool(loader.AsListConfig, "", false)
	if err != nil {
		return nil, err
	}
	joinWith := p.String("join_with", CombineJoinWithDefault, "")

	combines := make([]core.Supplier, len(lists))
	for i, x := range lists {
		if _, is := x.([]interface{}); !is {
			return nil, core.Configf("combine-list refs %v is not a list", x)
		}
		names, err := core.Names(x)
		if err != nil {
			return nil, err
		}
		subs, err := getAll(l, names)
		if err != nil {
			return nil, err
		}
		if combines[i], err = suppliers.NewCombine(subs, joinWith, asList); err != nil {
			return nil, err
		}
	}
	return suppliers.NewCombineList(combines)
}

// WeightedRef picks one of the refs named in the data, which maps
// each ref to its weight.
//
// A name that isn't a field or a ref is only an error when it's
// picked.
func WeightedRef(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	weights, is := fs.Data.(map[string]interface{})
	if !is || len(weights) == 0 {
		return nil, core.Configf("weighted_ref needs a mapping of refs to weights, not %v", fs.Data)
	}
	picker, err := suppliers.NewWeightedMap(weights)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]core.Supplier, len(weights))
	for name := range weights {
		if !l.Has(name) {
			continue
		}
		s, err := l.Get(name)
		if err != nil {
			return nil, err
		}
		refs[name] = s
	}
	return suppliers.NewWeightedRef(picker, refs), nil
}

// Nested supplies objects built from its own fields, which may have
// their own field_groups.  With a count it supplies a list of them.
func Nested(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	fields, is := fs.Fields.(map[string]interface{})
	if !is || len(fields) == 0 {
		return nil, core.Configf("nested needs a mapping of fields, not %v", fs.Fields)
	}
	names := core.OrderedKeys(fs.FieldOrder, fields)

	subs := make(map[string]core.Supplier, len(fields))
	for _, name := range names {
		s, err := l.GetFromSpec(fields[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		subs[name] = s
	}

	kp, err := keys.New(names, fs.FieldGroups, nil)
	if err != nil {
		return nil, err
	}

	p := paramsOf(fs, l)
	var count core.Supplier
	if x, have := p.cfg.Get(loader.CountConfig); have {
		if count, err = loader.CountSupplier(l.Registry(), x); err != nil {
			return nil, err
		}
	}
	asList, err := p.Bool(loader.AsListConfig, "", false)
	if err != nil {
		return nil, err
	}
	n, err := suppliers.NewNested(subs, kp, count, asList)
	if err != nil {
		return nil, err
	}
	n.Order = names
	return n, nil
}

// placeholderSuppliers maps each placeholder name to a Supplier.  A
// list of names uses the names themselves.  A mapping gives an alias
// for each name.
func placeholderSuppliers(typ string, fs *core.FieldSpec, l core.Loader) (map[string]core.Supplier, error) {
	if fs.Refs != nil && fs.Fields != nil {
		return nil, core.Configf("%s takes refs or fields, not both", typ)
	}
	x := fs.Refs
	if x == nil {
		x = fs.Fields
	}
	if x == nil {
		return nil, core.Configf("%s needs refs or fields", typ)
	}

	aliases := map[string]string{}
	if m, is := x.(map[string]interface{}); is {
		for alias, y := range m {
			name, is := y.(string)
			if !is {
				return nil, core.Configf("%s: %s refers to %v, which is not a name", typ, alias, y)
			}
			aliases[alias] = name
		}
	} else {
		names, err := core.Names(x)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			aliases[name] = name
		}
	}

	acc := make(map[string]core.Supplier, len(aliases))
	for alias, name := range aliases {
		s, err := l.Get(name)
		if err != nil {
			return nil, err
		}
		acc[alias] = s
	}
	return acc, nil
}

// Calculate returns the constructor for calculated fields, which
// evaluate a formula with one of the given interpreters.
func Calculate(interps map[string]core.Interpreter) core.Constructor {
	return func(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
		if fs.Formula == "" {
			return nil, core.Configf("calculate needs a formula")
		}
		subs, err := placeholderSuppliers("calculate", fs, l)
		if err != nil {
			return nil, err
		}
		p := paramsOf(fs, l)
		name := p.String("interpreter", "", interpreters.DefaultInterpreter)
		interp, have := interps[name]
		if !have {
			return nil, core.Configf("no interpreter %q", name)
		}
		timeout, err := p.Duration("timeout", CalculateTimeoutDefault, suppliers.DefaultCalculateTimeout)
		if err != nil {
			return nil, err
		}
		return suppliers.NewCalculate(fs.Formula, subs, interp, timeout)
	}
}

// Templated renders the template in its data with the values of its
// refs (or fields).
func Templated(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	template, is := fs.Data.(string)
	if !is {
		return nil, core.Configf("templated needs a template string, not %v", fs.Data)
	}
	subs, err := placeholderSuppliers("templated", fs, l)
	if err != nil {
		return nil, err
	}
	return suppliers.NewTemplated(template, subs)
}
