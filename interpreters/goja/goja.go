// Package goja provides a core.Interpreter for calculated fields
// using Goja, which is a Go implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
package goja

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Comcast/datagen/core"

	"github.com/dop251/goja"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Interpreter implements core.Interpreter.
type Interpreter struct {
	// Functions are extra functions exposed to expressions.
	Functions map[string]interface{}

	// LibraryProvider, if not nil, resolves require("NAME") at
	// the top of a formula.
	LibraryProvider LibraryProvider
}

// NewInterpreter makes a new Interpreter with a few handy functions
// (round, floor, ceil, abs, min, max, pow, sqrt) in scope.
// Libraries are files relative to the working directory.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		LibraryProvider: FileLibraryProvider("."),
		Functions: map[string]interface{}{
			"round": func(x float64, places int) float64 {
				scale := math.Pow(10, float64(places))
				return math.Round(x*scale) / scale
			},
			"floor": math.Floor,
			"ceil":  math.Ceil,
			"abs":   math.Abs,
			"min":   math.Min,
			"max":   math.Max,
			"pow":   math.Pow,
			"sqrt":  math.Sqrt,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
		},
	}
}

// Compile inlines required libraries and calls goja.Compile.
func (i *Interpreter) Compile(ctx context.Context, code string) (interface{}, error) {
	code, err := InlineRequires(ctx, code, i.LibraryProvider)
	if err != nil {
		return nil, err
	}
	p, err := goja.Compile("", code, true)
	if err != nil {
		return nil, core.Configf("can't compile %q: %s", code, err)
	}
	return p, nil
}

// Exec implements the Interpreter method of the same name.
//
// The given vars are globals in the runtime.  The value of the
// expression is returned with numbers as float64.
//
// If the ctx is cancelled (or times out) before the expression
// finishes, Exec returns Interrupted.
func (i *Interpreter) Exec(ctx context.Context, vars map[string]interface{}, compiled interface{}) (interface{}, error) {
	p, is := compiled.(*goja.Program)
	if !is {
		return nil, fmt.Errorf("Goja bad compilation: %T %#v", compiled, compiled)
	}

	o := goja.New()
	for name, f := range i.Functions {
		if err := o.Set(name, f); err != nil {
			return nil, err
		}
	}
	for name, x := range vars {
		if err := o.Set(name, x); err != nil {
			return nil, err
		}
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(p)
	cancel()

	if err != nil {
		var ie *goja.InterruptedError
		if errors.As(err, &ie) {
			return nil, Interrupted
		}
		return nil, core.Runtimef("evaluation failed: %s", err)
	}

	return export(v.Export()), nil
}

// export makes integers float64 so that results look like parsed
// JSON.
func export(x interface{}) interface{} {
	switch vv := x.(type) {
	case int64:
		return float64(vv)
	case int:
		return float64(vv)
	case []interface{}:
		for i, y := range vv {
			vv[i] = export(y)
		}
		return vv
	case map[string]interface{}:
		for k, y := range vv {
			vv[k] = export(y)
		}
		return vv
	default:
		return x
	}
}
