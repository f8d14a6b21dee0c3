// Package hub provides the built-in dataset hub publish step. The step is
// only ever appended to a pipeline when both hub credentials are
// configured; weft itself never talks to the hub.
package hub

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the write_to_hub step definition.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepDefinition{
		Name:        "write_to_hub",
		Description: "Uploads the final dataset to a hosted dataset hub.",
		Image:       "ghcr.io/weftlabs/write_to_hub:latest",
		Inputs: map[string]*registry.InputDefinition{
			"username": {
				Name:        "username",
				Type:        cty.String,
				Description: "Hub account owning the target dataset.",
			},
			"hf_token": {
				Name:        "hf_token",
				Type:        cty.String,
				Description: "Write token for the hub account.",
			},
			"dataset_name": {
				Name:        "dataset_name",
				Type:        cty.String,
				Description: "Name of the dataset repository to create or update.",
			},
			"image_column_names": {
				Name:        "image_column_names",
				Type:        cty.List(cty.String),
				Description: "Columns holding binary image blobs, encoded as such on upload.",
				Default:     registry.Default(cty.ListValEmpty(cty.String)),
			},
			"column_name_mapping": {
				Name:        "column_name_mapping",
				Type:        cty.Map(cty.String),
				Description: "Renames dataset columns before upload, e.g. image_width to width.",
				Default:     registry.Default(cty.MapValEmpty(cty.String)),
			},
		},
	})
}
