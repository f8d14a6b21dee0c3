// Package caption provides the built-in BLIP captioning step.
package caption

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the caption_images step definition.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepDefinition{
		Name:        "caption_images",
		Description: "Generates captions for downloaded images with a BLIP model.",
		Image:       "ghcr.io/weftlabs/caption_images:latest",
		Accelerator: "GPU",
		Inputs: map[string]*registry.InputDefinition{
			"model_id": {
				Name:        "model_id",
				Type:        cty.String,
				Description: "Hub id of the captioning model.",
				Default:     registry.Default(cty.StringVal("Salesforce/blip-image-captioning-base")),
			},
			"batch_size": {
				Name:        "batch_size",
				Type:        cty.Number,
				Description: "Images per inference batch.",
				Default:     registry.Default(cty.NumberIntVal(8)),
			},
			"max_new_tokens": {
				Name:        "max_new_tokens",
				Type:        cty.Number,
				Description: "Token budget per generated caption.",
				Default:     registry.Default(cty.NumberIntVal(50)),
			},
		},
	})
}
