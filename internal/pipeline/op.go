package pipeline

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Resources describes the accelerator requirements of an op.
type Resources struct {
	Accelerator string
	Count       int
}

// Op is one declared operation of a pipeline: a resolved step plus its
// validated arguments, resource requirements, and upstream dependencies.
type Op struct {
	// Name is the unique instance name within the pipeline.
	Name string
	// Ref is the step reference the op was declared with.
	Ref string
	// Definition is the resolved step contract.
	Definition *registry.StepDefinition
	// Arguments is the normalized argument map: validated, converted to
	// the declared types, defaults filled in.
	Arguments map[string]cty.Value
	// Resources is nil for CPU-only ops.
	Resources *Resources

	dependsOn []string
}

// DependsOn returns the names of the ops this op depends on, in the order
// the edges were declared.
func (o *Op) DependsOn() []string {
	deps := make([]string, len(o.dependsOn))
	copy(deps, o.dependsOn)
	return deps
}

// OpOption customizes a single AddOp call.
type OpOption func(*opSettings)

type opSettings struct {
	name      string
	resources *Resources
	dependsOn []string
}

// WithName overrides the instance name, which defaults to the resolved
// step's name. Required when the same step is used twice in one pipeline.
func WithName(name string) OpOption {
	return func(s *opSettings) { s.name = name }
}

// WithResources sets explicit accelerator requirements, overriding the
// step definition's recommendation.
func WithResources(accelerator string, count int) OpOption {
	return func(s *opSettings) { s.resources = &Resources{Accelerator: accelerator, Count: count} }
}

// WithDependsOn declares upstream dependencies at creation time. All named
// ops must already exist in the pipeline.
func WithDependsOn(names ...string) OpOption {
	return func(s *opSettings) { s.dependsOn = append(s.dependsOn, names...) }
}
