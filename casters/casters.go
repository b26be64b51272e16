// Package casters provides the built-in cast operations used by the
// "cast" config option, as in
//
//	{"type": "rand_range", "data": [1, 100], "config": {"cast": "int;zfill5"}}
package casters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/registry"
)

// ChainSeparator separates the caster names in a chain.
const ChainSeparator = ";"

// Register adds the built-in casters.
func Register(r *registry.Registry) {
	r.RegisterCaster("int", simple(toInt))
	r.RegisterCaster("float", simple(toFloat))
	r.RegisterCaster("string", simple(toString))
	r.RegisterCaster("str", simple(toString))
	r.RegisterCaster("hex", simple(toHex))
	r.RegisterCaster("bool", simple(toBool))
	r.RegisterCaster("upper", text(cases.Upper(language.Und).String))
	r.RegisterCaster("lower", text(cases.Lower(language.Und).String))
	r.RegisterCaster("title", text(cases.Title(language.Und).String))
	r.RegisterCaster("trim", text(strings.TrimSpace))
	r.RegisterCaster("round", round)
	r.RegisterCaster("zfill", zfill)
}

// Chain resolves a ";"-separated list of caster names into a single
// Caster that applies them left to right.
//
// A name may end in digits, which are passed to the caster
// registered under the rest of the name ("round2", "zfill10").  An
// unknown name is a ConfigurationError.
func Chain(r core.Registry, spec string) (core.Caster, error) {
	var cs []core.Caster
	for _, name := range strings.Split(spec, ChainSeparator) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := Lookup(r, name)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	if len(cs) == 0 {
		return nil, core.Configf("empty cast %q", spec)
	}
	if len(cs) == 1 {
		return cs[0], nil
	}
	return core.CasterFunc(func(x interface{}) (interface{}, error) {
		var err error
		for _, c := range cs {
			if x, err = c.Cast(x); err != nil {
				return nil, err
			}
		}
		return x, nil
	}), nil
}

// Lookup finds a single caster.
func Lookup(r core.Registry, name string) (core.Caster, error) {
	if f, have := r.Caster(name); have {
		return f("")
	}
	i := strings.IndexFunc(name, unicode.IsDigit)
	if 0 < i {
		if f, have := r.Caster(name[:i]); have {
			return f(name[i:])
		}
	}
	return nil, core.Configf("unknown caster %q", name)
}

func simple(f func(interface{}) (interface{}, error)) core.CasterFactory {
	return func(arg string) (core.Caster, error) {
		if arg != "" {
			return nil, core.Configf("caster takes no argument (%q)", arg)
		}
		return core.CasterFunc(f), nil
	}
}

func text(f func(string) string) core.CasterFactory {
	return simple(func(x interface{}) (interface{}, error) {
		return f(core.Stringify(x)), nil
	})
}

func toInt(x interface{}) (interface{}, error) {
	if b, is := x.(bool); is {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	f, ok := core.AsFloat(x)
	if !ok {
		return nil, core.Runtimef("can't cast %v (%T) to int", x, x)
	}
	return int(f), nil
}

func toFloat(x interface{}) (interface{}, error) {
	f, ok := core.AsFloat(x)
	if !ok {
		return nil, core.Runtimef("can't cast %v (%T) to float", x, x)
	}
	return f, nil
}

func toString(x interface{}) (interface{}, error) {
	return core.Stringify(x), nil
}

func toHex(x interface{}) (interface{}, error) {
	f, ok := core.AsFloat(x)
	if !ok {
		return nil, core.Runtimef("can't cast %v (%T) to hex", x, x)
	}
	n := int64(f)
	if n < 0 {
		return "-0x" + strconv.FormatInt(-n, 16), nil
	}
	return "0x" + strconv.FormatInt(n, 16), nil
}

func toBool(x interface{}) (interface{}, error) {
	switch vv := x.(type) {
	case bool:
		return vv, nil
	case nil:
		return false, nil
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(vv)); err == nil {
			return b, nil
		}
		return vv != "", nil
	}
	if f, ok := core.AsFloat(x); ok {
		return f != 0, nil
	}
	return true, nil
}

func round(arg string) (core.Caster, error) {
	places := 0
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, core.Configf("bad round places %q", arg)
		}
		places = n
	}
	scale := math.Pow(10, float64(places))
	return core.CasterFunc(func(x interface{}) (interface{}, error) {
		f, ok := core.AsFloat(x)
		if !ok {
			return nil, core.Runtimef("can't round %v (%T)", x, x)
		}
		return math.Round(f*scale) / scale, nil
	}), nil
}

func zfill(arg string) (core.Caster, error) {
	width, err := strconv.Atoi(arg)
	if err != nil || width < 0 {
		return nil, core.Configf("zfill needs a width, as in zfill5 (not %q)", arg)
	}
	return core.CasterFunc(func(x interface{}) (interface{}, error) {
		s := core.Stringify(x)
		sign := ""
		if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
			sign, s = s[:1], s[1:]
		}
		if pad := width - len(sign) - len(s); 0 < pad {
			s = strings.Repeat("0", pad) + s
		}
		return fmt.Sprintf("%s%s", sign, s), nil
	}), nil
}
