// Package pipeline implements the declarative pipeline graph builder. A
// Pipeline collects named ops and their dependency edges at definition
// time; Finalize freezes the graph into a topologically ordered plan for an
// external execution engine. Nothing in this package executes a step.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/weftlabs/weft/internal/ctxlog"
	"github.com/weftlabs/weft/internal/dag"
	"github.com/weftlabs/weft/internal/plan"
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Pipeline is a named collection of ops under construction. It is built
// single-threaded at definition time and is not safe for concurrent
// mutation.
type Pipeline struct {
	id          string
	name        string
	description string
	basePath    string
	resolver    registry.Resolver

	ops    []*Op
	byName map[string]*Op
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithResolver sets the step resolver used by AddOp. Defaults to an empty
// registry, so any real pipeline needs one.
func WithResolver(r registry.Resolver) Option {
	return func(p *Pipeline) { p.resolver = r }
}

// New creates an empty pipeline. The base path is created on disk when it
// is local; remote object-store paths (anything with a scheme) are passed
// through untouched for the engine to interpret.
func New(ctx context.Context, name, description, basePath string, opts ...Option) (*Pipeline, error) {
	if name == "" {
		return nil, fmt.Errorf("pipeline name must not be empty")
	}
	if basePath == "" {
		return nil, fmt.Errorf("pipeline %q: base path must not be empty", name)
	}

	p := &Pipeline{
		id:          uuid.NewString(),
		name:        name,
		description: description,
		basePath:    basePath,
		byName:      make(map[string]*Op),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = registry.New()
	}

	if isLocalPath(basePath) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("pipeline %q: failed to create base path %s: %w", name, basePath, err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Pipeline created.", "name", name, "base_path", basePath, "id", p.id)
	return p, nil
}

// isLocalPath reports whether a base path points at the local filesystem
// rather than a remote object store.
func isLocalPath(path string) bool {
	return !strings.Contains(path, "://")
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Ops returns the ops in declaration order.
func (p *Pipeline) Ops() []*Op {
	ops := make([]*Op, len(p.ops))
	copy(ops, p.ops)
	return ops
}

// Op returns the op with the given name, if present.
func (p *Pipeline) Op(name string) (*Op, bool) {
	op, ok := p.byName[name]
	return op, ok
}

// AddOp resolves a step reference, validates the arguments against the
// step's declared inputs, and appends the resulting op to the pipeline.
// Declared dependencies must already exist; this ordering rule is the
// acyclicity guarantee.
func (p *Pipeline) AddOp(ctx context.Context, ref string, args map[string]cty.Value, opts ...OpOption) (*Op, error) {
	logger := ctxlog.FromContext(ctx)

	var settings opSettings
	for _, opt := range opts {
		opt(&settings)
	}

	def, err := p.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: cannot add op for %q: %w", p.name, ref, err)
	}

	name := settings.name
	if name == "" {
		name = def.Name
	}
	if _, exists := p.byName[name]; exists {
		return nil, fmt.Errorf("pipeline %q: %w: %q", p.name, ErrDuplicateOp, name)
	}

	normalized, err := registry.ValidateArguments(def, args)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q, op %q: %w", p.name, name, err)
	}

	resources := settings.resources
	if resources == nil && def.Accelerator != "" {
		resources = &Resources{Accelerator: def.Accelerator, Count: 1}
	}

	op := &Op{
		Name:       name,
		Ref:        ref,
		Definition: def,
		Arguments:  normalized,
		Resources:  resources,
	}
	p.ops = append(p.ops, op)
	p.byName[name] = op

	if err := p.Connect(ctx, name, settings.dependsOn...); err != nil {
		// Roll back so a failed add leaves the pipeline untouched.
		p.ops = p.ops[:len(p.ops)-1]
		delete(p.byName, name)
		return nil, err
	}

	logger.Debug("Op added to pipeline.", "pipeline", p.name, "op", name, "ref", ref, "deps", op.dependsOn)
	return op, nil
}

// Connect records a directed edge from each named dependency to the given
// op. Every dependency must already be part of the pipeline.
func (p *Pipeline) Connect(ctx context.Context, name string, deps ...string) error {
	op, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("pipeline %q: %w: op %q not found", p.name, ErrUnknownDependency, name)
	}

	for _, dep := range deps {
		if dep == name {
			return fmt.Errorf("pipeline %q: op %q cannot depend on itself", p.name, name)
		}
		if _, ok := p.byName[dep]; !ok {
			return fmt.Errorf("pipeline %q: op %q: %w: %q is not part of the pipeline (dependencies must be added first)",
				p.name, name, ErrUnknownDependency, dep)
		}
		if !containsString(op.dependsOn, dep) {
			op.dependsOn = append(op.dependsOn, dep)
		}
	}
	return nil
}

// Finalize freezes the pipeline into an immutable plan. It rebuilds the
// graph from scratch on every call, so finalizing twice yields equal plans.
func (p *Pipeline) Finalize(ctx context.Context) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Finalizing pipeline.", "pipeline", p.name, "ops", len(p.ops))

	g := dag.New()
	for _, op := range p.ops {
		g.AddNode(op.Name)
	}
	for _, op := range p.ops {
		for _, dep := range op.dependsOn {
			if err := g.AddEdge(dep, op.Name); err != nil {
				return nil, fmt.Errorf("pipeline %q: %w", p.name, err)
			}
		}
	}

	// Construction order already prevents cycles; this is the finalize
	// guarantee that no ill-formed graph ever leaves this package.
	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w: %v", p.name, ErrCycle, err)
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w: %v", p.name, ErrCycle, err)
	}

	result := &plan.Plan{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		BasePath:    p.basePath,
		Ops:         make([]plan.Op, 0, len(order)),
	}
	for _, name := range order {
		op := p.byName[name]
		args, err := plan.EncodeArguments(op.Arguments)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q, op %q: %w", p.name, name, err)
		}

		planOp := plan.Op{
			Name:      op.Name,
			Ref:       op.Ref,
			Image:     op.Definition.Image,
			Arguments: args,
			DependsOn: sortedCopy(op.dependsOn),
		}
		if op.Resources != nil {
			planOp.Resources = &plan.Resources{Accelerator: op.Resources.Accelerator, Count: op.Resources.Count}
		}
		result.Ops = append(result.Ops, planOp)
	}

	logger.Debug("Pipeline finalized.", "pipeline", p.name, "plan_id", result.ID)
	return result, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// sortedCopy keeps plan output deterministic regardless of edge
// declaration order.
func sortedCopy(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}
