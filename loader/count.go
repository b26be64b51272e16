package loader

import (
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/distributions"
	"github.com/Comcast/datagen/suppliers"
)

// CountSupplier interprets a count specification:
//
//	3                                   always 3
//	[1, 2, 3]                           1, 2, 3, 1, ...
//	{"1": 0.6, "2": 0.3, "3": 0.1}      weighted
//	"normal(mean=5, stddev=2, min=1)"   a distribution
//
// Values are made integers when they are used (see
// suppliers.CountOf).  Anything else, including a bad distribution
// formula, is a ConfigurationError.
func CountSupplier(r core.Registry, x interface{}) (core.Supplier, error) {
	switch vv := x.(type) {
	case nil:
		return nil, core.Configf("empty count")
	case string:
		s := strings.TrimSpace(vv)
		if n, ok := core.AsInt(s); ok {
			return &suppliers.Constant{Value: n}, nil
		}
		if !distributions.IsFormula(s) {
			return nil, core.Configf("count %q is neither an integer nor a distribution", vv)
		}
		d, err := distributions.Parse(r, s)
		if err != nil {
			return nil, err
		}
		return &suppliers.FromDistribution{
			Distribution: d,
			Precision:    suppliers.NoPrecision,
		}, nil
	case []interface{}:
		counts := make([]interface{}, len(vv))
		for i, y := range vv {
			n, ok := core.AsInt(y)
			if !ok || n < 0 {
				return nil, core.Configf("count %v in %v is not a non-negative integer", y, vv)
			}
			counts[i] = n
		}
		return suppliers.NewListRotating(counts)
	case map[string]interface{}:
		return suppliers.NewWeightedCounts(vv)
	default:
		n, ok := core.AsInt(x)
		if !ok || n < 0 {
			return nil, core.Configf("count %v (%T) is not a non-negative integer", x, x)
		}
		return &suppliers.Constant{Value: n}, nil
	}
}
