// Package distributions provides numeric distributions and the
// parser for distribution formulas like "normal(mean=5, stddev=2)".
package distributions

import (
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"
)

// Register adds the built-in distributions.
func Register(r *registry.Registry) {
	r.RegisterDistribution("uniform", Uniform)
	r.RegisterDistribution("normal", Normal)
	r.RegisterDistribution("gauss", Normal)
	r.RegisterDistribution("lognormal", LogNormal)
	r.RegisterDistribution("exponential", Exponential)
}

var formula = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\((.*)\)\s*$`)

// IsFormula reports whether s looks like a distribution formula.
func IsFormula(s string) bool {
	return formula.MatchString(s)
}

// Parse parses a formula of the form name(k=v, k=v, ...) and makes
// the named distribution.
//
// Unknown names, unknown or missing keywords and values that aren't
// numbers are all ConfigurationErrors.
func Parse(r core.Registry, s string) (core.Distribution, error) {
	m := formula.FindStringSubmatch(s)
	if m == nil {
		return nil, core.Configf("bad distribution formula %q", s)
	}
	name := m[1]
	f, have := r.Distribution(name)
	if !have {
		return nil, core.Configf("unknown distribution %q", name)
	}
	params := make(map[string]float64)
	if args := strings.TrimSpace(m[2]); args != "" {
		for _, arg := range strings.Split(args, ",") {
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) != 2 {
				return nil, core.Configf("distribution %s: argument %q is not k=v", name, arg)
			}
			k := strings.TrimSpace(kv[0])
			v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
			if err != nil {
				return nil, core.Configf("distribution %s: %s=%q is not a number", name, k, kv[1])
			}
			if _, dup := params[k]; dup {
				return nil, core.Configf("distribution %s: %s given twice", name, k)
			}
			params[k] = v
		}
	}
	return f(params)
}

// checkParams complains about missing required and unknown keywords.
func checkParams(name string, params map[string]float64, required []string, optional ...string) error {
	allowed := make(map[string]bool, len(required)+len(optional))
	for _, k := range required {
		if _, have := params[k]; !have {
			return core.Configf("distribution %s: missing %s", name, k)
		}
		allowed[k] = true
	}
	for _, k := range optional {
		allowed[k] = true
	}
	var unknown []string
	for k := range params {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if 0 < len(unknown) {
		sort.Strings(unknown)
		return core.Configf("distribution %s: unknown arguments %s", name, strings.Join(unknown, ", "))
	}
	return nil
}

// DistributionFunc makes a function into a Distribution.
type DistributionFunc func() float64

// Next calls f.
func (f DistributionFunc) Next() float64 {
	return f()
}

// Uniform is uniform(start, end).
func Uniform(params map[string]float64) (core.Distribution, error) {
	if err := checkParams("uniform", params, []string{"start", "end"}); err != nil {
		return nil, err
	}
	start, end := params["start"], params["end"]
	if end < start {
		return nil, core.Configf("distribution uniform: end %v < start %v", end, start)
	}
	return DistributionFunc(func() float64 {
		return start + rand.Float64()*(end-start)
	}), nil
}

// bounds gets optional min and max.
func bounds(params map[string]float64) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if v, have := params["min"]; have {
		lo = v
	}
	if v, have := params["max"]; have {
		hi = v
	}
	return lo, hi
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Normal is normal(mean, stddev[, min, max]).  Values outside of the
// optional bounds are clamped.
func Normal(params map[string]float64) (core.Distribution, error) {
	if err := checkParams("normal", params, []string{"mean", "stddev"}, "min", "max"); err != nil {
		return nil, err
	}
	mean, stddev := params["mean"], params["stddev"]
	if stddev < 0 {
		return nil, core.Configf("distribution normal: negative stddev %v", stddev)
	}
	lo, hi := bounds(params)
	return DistributionFunc(func() float64 {
		return clamp(mean+rand.NormFloat64()*stddev, lo, hi)
	}), nil
}

// LogNormal is lognormal(mean, stddev[, min, max]), where mean and
// stddev describe the underlying normal distribution.
func LogNormal(params map[string]float64) (core.Distribution, error) {
	if err := checkParams("lognormal", params, []string{"mean", "stddev"}, "min", "max"); err != nil {
		return nil, err
	}
	mean, stddev := params["mean"], params["stddev"]
	if stddev < 0 {
		return nil, core.Configf("distribution lognormal: negative stddev %v", stddev)
	}
	lo, hi := bounds(params)
	return DistributionFunc(func() float64 {
		return clamp(math.Exp(mean+rand.NormFloat64()*stddev), lo, hi)
	}), nil
}

// Exponential is exponential(rate).
func Exponential(params map[string]float64) (core.Distribution, error) {
	if err := checkParams("exponential", params, []string{"rate"}); err != nil {
		return nil, err
	}
	rate := params["rate"]
	if rate <= 0 {
		return nil, core.Configf("distribution exponential: rate %v must be positive", rate)
	}
	return DistributionFunc(func() float64 {
		return rand.ExpFloat64() / rate
	}), nil
}
