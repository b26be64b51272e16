package suppliers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Comcast/datagen/core"
)

// DefaultCalculateTimeout bounds a formula evaluation when no
// timeout is given.
const DefaultCalculateTimeout = time.Second

// Calculate evaluates a formula with an Interpreter.
//
// The formula refers to other values with "{{ name }}" placeholders.
// Each placeholder becomes a variable whose value comes from the
// Supplier for that name.
type Calculate struct {
	formula  string
	interp   core.Interpreter
	compiled interface{}
	timeout  time.Duration

	// vars maps a variable name to its Supplier.
	vars map[string]core.Supplier
	// names is vars' keys sorted.
	names []string
}

// NewCalculate compiles the formula.  Every placeholder needs a
// Supplier.
func NewCalculate(formula string, suppliers map[string]core.Supplier, interp core.Interpreter, timeout time.Duration) (*Calculate, error) {
	if formula == "" {
		return nil, core.Configf("calculate needs a formula")
	}
	if timeout <= 0 {
		timeout = DefaultCalculateTimeout
	}
	placeholders := core.Placeholders(formula)
	vars := make(map[string]core.Supplier, len(placeholders))
	varOf := make(map[string]string, len(placeholders))
	for i, p := range placeholders {
		sub, have := suppliers[p]
		if !have {
			return nil, core.Configf("formula %q refers to %q, which isn't among its fields or refs", formula, p)
		}
		v := fmt.Sprintf("__v%d", i)
		vars[v] = sub
		varOf[p] = v
	}
	code, _ := core.RenderPlaceholders(formula, func(name string) (string, error) {
		return varOf[name], nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	compiled, err := interp.Compile(ctx, code)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Strings(names)

	return &Calculate{
		formula:  formula,
		interp:   interp,
		compiled: compiled,
		timeout:  timeout,
		vars:     vars,
		names:    names,
	}, nil
}

// Next implements core.Supplier.
func (s *Calculate) Next(iteration int) (interface{}, error) {
	bs := make(map[string]interface{}, len(s.vars))
	for _, v := range s.names {
		x, err := s.vars[v].Next(iteration)
		if err != nil {
			return nil, err
		}
		bs[v] = x
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	x, err := s.interp.Exec(ctx, bs, s.compiled)
	if err != nil {
		if core.IsRuntimeError(err) {
			return nil, err
		}
		return nil, core.Runtimef("formula %q: %s", s.formula, err)
	}
	return x, nil
}

// Templated renders a template with "{{ name }}" placeholders.
type Templated struct {
	template  string
	suppliers map[string]core.Supplier
	names     []string
}

// NewTemplated makes a Templated.  Every placeholder needs a
// Supplier.
func NewTemplated(template string, suppliers map[string]core.Supplier) (*Templated, error) {
	names := core.Placeholders(template)
	for _, p := range names {
		if _, have := suppliers[p]; !have {
			return nil, core.Configf("template %q refers to %q, which isn't among its fields or refs", template, p)
		}
	}
	return &Templated{
		template:  template,
		suppliers: suppliers,
		names:     names,
	}, nil
}

// Next implements core.Supplier.  A placeholder that appears more
// than once gets the same value each time.
func (s *Templated) Next(iteration int) (interface{}, error) {
	values := make(map[string]string, len(s.names))
	for _, name := range s.names {
		x, err := s.suppliers[name].Next(iteration)
		if err != nil {
			return nil, err
		}
		values[name] = core.Stringify(x)
	}
	return core.RenderPlaceholders(s.template, func(name string) (string, error) {
		return values[name], nil
	})
}
