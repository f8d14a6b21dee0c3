package pipeline

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Dataset is a handle to the current tail of a fluent op chain. Each Apply
// appends an op depending on the previous one, mirroring how data flows
// through the pipeline: every op consumes the dataset produced by its
// predecessor.
type Dataset struct {
	pipeline *Pipeline
	tail     *Op
}

// Read starts a chain with a source op that has no upstream dependencies.
func (p *Pipeline) Read(ctx context.Context, ref string, args map[string]cty.Value, opts ...OpOption) (*Dataset, error) {
	op, err := p.AddOp(ctx, ref, args, opts...)
	if err != nil {
		return nil, err
	}
	return &Dataset{pipeline: p, tail: op}, nil
}

// Apply appends an op that consumes this dataset and returns the new tail.
func (d *Dataset) Apply(ctx context.Context, ref string, args map[string]cty.Value, opts ...OpOption) (*Dataset, error) {
	opts = append(opts, WithDependsOn(d.tail.Name))
	op, err := d.pipeline.AddOp(ctx, ref, args, opts...)
	if err != nil {
		return nil, err
	}
	return &Dataset{pipeline: d.pipeline, tail: op}, nil
}

// Op returns the op at the tail of the chain.
func (d *Dataset) Op() *Op {
	return d.tail
}
