package registry

import "github.com/zclconf/go-cty/cty"

// InputDefinition declares a single input argument of a step.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	// Default makes the input optional. A nil Default means the argument
	// is required.
	Default *cty.Value
}

// StepDefinition describes a runnable step as the external engine sees it.
type StepDefinition struct {
	Name        string
	Description string
	// Image is the container image the engine runs for this step.
	Image string
	// Accelerator names the recommended accelerator type, empty for
	// CPU-only steps. Ops may override it with an explicit resources block.
	Accelerator string
	Inputs      map[string]*InputDefinition
}

// Default is a convenience for building definitions with literal default
// values.
func Default(v cty.Value) *cty.Value {
	return &v
}
