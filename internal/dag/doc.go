// Package dag implements a minimal directed acyclic graph keyed by string
// node IDs. It tracks dependencies and dependents per node, detects cycles
// with a depth-first search, and produces a stable topological order.
//
// The pipeline builder owns all domain semantics (step references,
// arguments, validation); this package only cares about structure. Nodes
// are unexported and reached exclusively through the Graph API so the
// adjacency maps stay consistent.
package dag
