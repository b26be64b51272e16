package interpreters

import (
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/interpreters/goja"
)

// DefaultInterpreter is the name of the interpreter calculated
// fields use unless they say otherwise.
const DefaultInterpreter = "goja"

// Standard returns the interpreters available to calculated fields.
func Standard() map[string]core.Interpreter {
	is := make(map[string]core.Interpreter)

	g := goja.NewInterpreter()
	is["goja"] = g
	is["ecmascript"] = g
	is["ecmascript-5.1"] = g

	return is
}
