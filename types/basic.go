package types

import (
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/distributions"
	"github.com/Comcast/datagen/preprocess"
	"github.com/Comcast/datagen/suppliers"
)

// Values supplies the data.  A list is rotated through (or sampled
// if the sample option is on), a mapping is a weighted choice among
// its keys, and anything else is a constant.
func Values(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	if !fs.HasData {
		return nil, core.Configf("values needs data")
	}
	p := paramsOf(fs, l)
	switch vv := fs.Data.(type) {
	case []interface{}:
		sample, err := p.Bool("sample", SampleListsDefault, false)
		if err != nil {
			return nil, err
		}
		if sample {
			return suppliers.NewListSampling(vv)
		}
		return suppliers.NewListRotating(vv)
	case map[string]interface{}:
		return suppliers.NewWeightedMap(vv)
	default:
		return &suppliers.Constant{Value: vv}, nil
	}
}

// Ref supplies the values of another field or ref, named by the ref
// member (or the data).
func Ref(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	name := fs.Ref
	if name == "" {
		s, is := fs.Data.(string)
		if !is {
			return nil, core.Configf("ref needs a ref name, not %v", fs.Data)
		}
		name = s
	}
	return l.Get(name)
}

// ConfigRef refuses to supply anything.
func ConfigRef(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	return nil, core.Configf("a %s only holds config and can't supply values", preprocess.ConfigRefType)
}

// Range supplies [start, end, step] in order, end included, and
// starts over after the end.  The step defaults to 1.
func Range(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)
	xs, err := p.numbers("range", 2, 3)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if len(xs) == 3 {
		step = xs[2]
	}
	precision, err := p.Int("precision", "", suppliers.NoPrecision)
	if err != nil {
		return nil, err
	}
	return suppliers.NewRange(xs[0], xs[1], step, precision)
}

// RandRange supplies random floats in [start, end).
func RandRange(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)
	xs, err := p.numbers("rand_range", 2, 2)
	if err != nil {
		return nil, err
	}
	precision, err := p.Int("precision", "", suppliers.NoPrecision)
	if err != nil {
		return nil, err
	}
	return suppliers.NewRandomRange(xs[0], xs[1], precision)
}

// RandIntRange supplies random integers in [start, end].
func RandIntRange(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)
	xs, err := p.numbers("rand_int_range", 2, 2)
	if err != nil {
		return nil, err
	}
	start, ok := core.AsInt(xs[0])
	if !ok {
		return nil, core.Configf("rand_int_range start %v is not an integer", xs[0])
	}
	end, ok := core.AsInt(xs[1])
	if !ok {
		return nil, core.Configf("rand_int_range end %v is not an integer", xs[1])
	}
	return suppliers.NewRandomIntRange(start, end)
}

// Distribution supplies numbers from a distribution given by a
// formula like "normal(mean=5, stddev=2)".
func Distribution(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	formula, is := fs.Data.(string)
	if !is {
		return nil, core.Configf("distribution needs a formula, not %v", fs.Data)
	}
	d, err := distributions.Parse(l.Registry(), formula)
	if err != nil {
		return nil, err
	}
	precision, err := paramsOf(fs, l).Int("precision", "", suppliers.NoPrecision)
	if err != nil {
		return nil, err
	}
	return &suppliers.FromDistribution{
		Distribution: d,
		Precision:    precision,
	}, nil
}

// UUID supplies UUIDs of the configured variant.
func UUID(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	variant, err := paramsOf(fs, l).Int("variant", UUIDVariantDefault, 4)
	if err != nil {
		return nil, err
	}
	return suppliers.NewUUID(variant)
}

// SelectListSubset supplies random subsets of the data.
func SelectListSubset(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	values, is := fs.Data.([]interface{})
	if !is {
		return nil, core.Configf("select_list_subset needs a list, not %v", fs.Data)
	}
	p := paramsOf(fs, l)
	mean, err := p.Float("mean", "", 1)
	if err != nil {
		return nil, err
	}
	stddev, err := p.Float("stddev", "", 0)
	if err != nil {
		return nil, err
	}
	min, err := p.Int("min", "", 1)
	if err != nil {
		return nil, err
	}
	max, err := p.Int("max", "", len(values))
	if err != nil {
		return nil, err
	}
	var joinWith *string
	if p.cfg.Has("join_with") {
		s := p.cfg.String("join_with", "")
		joinWith = &s
	}
	return suppliers.NewSelectListSubset(values, mean, stddev, min, max, joinWith)
}
