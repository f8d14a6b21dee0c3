package registry

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a step reference cannot be resolved to a
// definition by any source.
var ErrNotFound = errors.New("step reference not found")

// Resolver resolves a step reference to its definition. Implementations:
// Registry (built-in steps by name) and DirResolver (component directories
// with a step.hcl manifest).
type Resolver interface {
	Resolve(ctx context.Context, ref string) (*StepDefinition, error)
}

// RefResolver routes a reference by its shape: anything that looks like a
// path ("./components/x", "components/x") goes to the directory resolver,
// bare names go to the registry.
type RefResolver struct {
	registry *Registry
	dir      *DirResolver
}

// NewRefResolver creates a composite resolver over a registry and a
// directory resolver.
func NewRefResolver(reg *Registry, dir *DirResolver) *RefResolver {
	return &RefResolver{registry: reg, dir: dir}
}

// Resolve implements Resolver.
func (r *RefResolver) Resolve(ctx context.Context, ref string) (*StepDefinition, error) {
	if isPathRef(ref) {
		return r.dir.Resolve(ctx, ref)
	}
	return r.registry.Resolve(ctx, ref)
}

// isPathRef reports whether a reference names a component directory rather
// than a registered step.
func isPathRef(ref string) bool {
	return strings.ContainsRune(ref, '/') || strings.HasPrefix(ref, ".")
}
