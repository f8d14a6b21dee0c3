package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface built-in step packages implement to contribute
// their definitions to a registry instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the step definitions compiled into the binary, keyed by
// step name.
type Registry struct {
	steps map[string]*StepDefinition
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{
		steps: make(map[string]*StepDefinition),
	}
}

// RegisterStep adds a definition to the registry. Registering the same step
// name twice is a programmer error and panics.
func (r *Registry) RegisterStep(def *StepDefinition) {
	if _, exists := r.steps[def.Name]; exists {
		panic(fmt.Sprintf("step with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering step definition.", "name", def.Name)
	r.steps[def.Name] = def
}

// Resolve looks up a step definition by name. It implements Resolver.
func (r *Registry) Resolve(ctx context.Context, ref string) (*StepDefinition, error) {
	def, ok := r.steps[ref]
	if !ok {
		return nil, fmt.Errorf("%w: no registered step named %q (known steps: %v)", ErrNotFound, ref, r.StepNames())
	}
	return def, nil
}

// StepNames returns the sorted names of all registered steps.
func (r *Registry) StepNames() []string {
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
