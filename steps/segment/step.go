// Package segment provides the built-in semantic segmentation step.
package segment

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the segment_images step definition.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepDefinition{
		Name:        "segment_images",
		Description: "Produces semantic segmentation maps for captioned images.",
		Image:       "ghcr.io/weftlabs/segment_images:latest",
		Accelerator: "GPU",
		Inputs: map[string]*registry.InputDefinition{
			"model_id": {
				Name:        "model_id",
				Type:        cty.String,
				Description: "Hub id of the segmentation model.",
				Default:     registry.Default(cty.StringVal("openmmlab/upernet-convnext-small")),
			},
			"batch_size": {
				Name:        "batch_size",
				Type:        cty.Number,
				Description: "Images per inference batch.",
				Default:     registry.Default(cty.NumberIntVal(8)),
			},
		},
	})
}
