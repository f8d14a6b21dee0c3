// Package model holds the format-agnostic representation of a pipeline
// definition, plus the HCL loader that produces it. The model is what the
// application wires into the pipeline builder; nothing downstream of this
// package knows the definition came from HCL.
package model

import "github.com/zclconf/go-cty/cty"

// Spec is the unified representation of one pipeline definition.
type Spec struct {
	Name        string
	Description string
	BasePath    string
	// Ops appear in declaration order. Dependencies may only point
	// backwards in this slice; the builder enforces that.
	Ops []*Op
	// Publish is nil when the definition has no publish block.
	Publish *Publish
}

// Op is the format-agnostic representation of an `op` block.
type Op struct {
	Ref       string
	Name      string
	Arguments map[string]cty.Value
	Resources *Resources
	DependsOn []string
}

// Resources mirrors an op's `resources` block.
type Resources struct {
	Accelerator string
	Count       int
}

// Publish is the format-agnostic representation of the optional `publish`
// block. Credentials are deliberately absent: they are configuration, not
// pipeline definition, and get injected at build time.
type Publish struct {
	Ref           string
	DatasetName   string
	ImageColumns  []string
	ColumnMapping map[string]string
}
