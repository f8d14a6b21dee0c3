// Package registry resolves step references to step definitions.
//
// A step definition is the contract between a pipeline and the external
// execution engine: the container image to run, the declared inputs with
// their types and defaults, and the recommended accelerator. Definitions
// come from two places: built-in step packages register themselves into a
// Registry at startup, and component directories carry a step.hcl manifest
// loaded on demand by the DirResolver. The RefResolver routes a reference
// to whichever source matches its shape.
package registry
