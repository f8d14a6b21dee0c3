package pipeline

import "errors"

var (
	// ErrDuplicateOp is returned when an op name is already taken within
	// the pipeline.
	ErrDuplicateOp = errors.New("duplicate op name")

	// ErrUnknownDependency is returned when an edge references an op that
	// has not been added to the pipeline yet. Only allowing edges to
	// already-added ops is what keeps the graph acyclic by construction.
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrCycle is returned by Finalize if the graph somehow contains a
	// circular dependency.
	ErrCycle = errors.New("dependency cycle")
)
