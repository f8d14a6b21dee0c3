// Package download provides the built-in image download step.
package download

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the download_images step definition. The timeout and
// retries inputs are plain arguments handed through to the component; weft
// does not interpret them.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepDefinition{
		Name:        "download_images",
		Description: "Downloads and resizes images from the URLs produced by a retrieval step.",
		Image:       "ghcr.io/weftlabs/download_images:latest",
		Inputs: map[string]*registry.InputDefinition{
			"timeout": {
				Name:        "timeout",
				Type:        cty.Number,
				Description: "Per-image download timeout in seconds.",
				Default:     registry.Default(cty.NumberIntVal(10)),
			},
			"retries": {
				Name:        "retries",
				Type:        cty.Number,
				Description: "Download attempts after the first failure.",
				Default:     registry.Default(cty.NumberIntVal(0)),
			},
			"image_size": {
				Name:        "image_size",
				Type:        cty.Number,
				Description: "Target edge size in pixels.",
				Default:     registry.Default(cty.NumberIntVal(256)),
			},
			"resize_mode": {
				Name:        "resize_mode",
				Type:        cty.String,
				Description: "One of no, border, keep_ratio, center_crop.",
				Default:     registry.Default(cty.StringVal("border")),
			},
			"resize_only_if_bigger": {
				Name:        "resize_only_if_bigger",
				Type:        cty.Bool,
				Description: "Skip resizing images already below the target size.",
				Default:     registry.Default(cty.False),
			},
			"min_image_size": {
				Name:        "min_image_size",
				Type:        cty.Number,
				Description: "Images below this edge size are dropped.",
				Default:     registry.Default(cty.NumberIntVal(0)),
			},
			"max_aspect_ratio": {
				Name:        "max_aspect_ratio",
				Type:        cty.Number,
				Description: "Images above this aspect ratio are dropped.",
				Default:     registry.Default(cty.NumberFloatVal(100)),
			},
		},
	})
}
