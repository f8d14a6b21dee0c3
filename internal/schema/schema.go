// Package schema holds the HCL decoding structures for pipeline definition
// files and step manifests. These are raw decode targets only; the
// format-agnostic representations live in internal/model and
// internal/registry.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// --- Pipeline definition structures ---

// OpArgs represents the content of the 'arguments' block within an op.
// Its attributes are opaque here; they are validated later against the
// resolved step's declared inputs.
type OpArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Resources represents the 'resources' block of an op, declaring the
// accelerator requirements the external engine should honor.
type Resources struct {
	Accelerator string `hcl:"accelerator"`
	Count       int    `hcl:"count,optional"`
}

// Op represents an `op` block from a pipeline file: one configured
// invocation of a step. The first label is the step reference (a registry
// name or a local component directory), the second the instance name.
type Op struct {
	StepRef   string     `hcl:"step_ref,label"`
	Name      string     `hcl:"instance_name,label"`
	Arguments *OpArgs    `hcl:"arguments,block"`
	Resources *Resources `hcl:"resources,block"`
	DependsOn []string   `hcl:"depends_on,optional"`
}

// Pipeline represents the `pipeline` header block naming the pipeline and
// its base storage path.
type Pipeline struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	BasePath    string `hcl:"base_path"`
}

// Publish represents the optional `publish` block describing the terminal
// hub-upload op. Credentials are never part of the file; they are injected
// at build time when configured.
type Publish struct {
	StepRef       string            `hcl:"step_ref,label"`
	DatasetName   string            `hcl:"dataset_name"`
	ImageColumns  []string          `hcl:"image_columns,optional"`
	ColumnMapping map[string]string `hcl:"column_name_mapping,optional"`
}

// PipelineFile represents the top-level structure of a pipeline definition
// file.
type PipelineFile struct {
	Pipelines []*Pipeline `hcl:"pipeline,block"`
	Ops       []*Op       `hcl:"op,block"`
	Publish   []*Publish  `hcl:"publish,block"`
	Body      hcl.Body    `hcl:",remain"`
}

// --- Step manifest structures ---

// InputDefinition defines a single declared input of a step.
type InputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
}

// StepManifest represents the `step` block of a component directory's
// step.hcl manifest.
type StepManifest struct {
	Name        string             `hcl:"name,label"`
	Description string             `hcl:"description,optional"`
	Image       string             `hcl:"image,optional"`
	Accelerator string             `hcl:"accelerator,optional"`
	Inputs      []*InputDefinition `hcl:"input,block"`
}

// ManifestFile represents the top-level structure of a step.hcl manifest.
type ManifestFile struct {
	Step *StepManifest `hcl:"step,block"`
	Body hcl.Body      `hcl:",remain"`
}
