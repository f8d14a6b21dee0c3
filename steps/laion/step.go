// Package laion provides the built-in LAION retrieval steps. Two retrieval
// strategies are registered: nearest-neighbor lookup by prompt text and by
// a precomputed CLIP embedding. Both produce a dataset of candidate image
// URLs for the download step.
package laion

import (
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes both retrieval step definitions.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep(&registry.StepDefinition{
		Name:        "retrieve_laion_by_prompt",
		Description: "Retrieves image URLs from the LAION-5B index by prompt similarity.",
		Image:       "ghcr.io/weftlabs/retrieve_laion_by_prompt:latest",
		Inputs:      retrievalInputs(),
	})

	r.RegisterStep(&registry.StepDefinition{
		Name:        "retrieve_laion_by_embedding",
		Description: "Retrieves image URLs from the LAION-5B index by CLIP embedding distance.",
		Image:       "ghcr.io/weftlabs/retrieve_laion_by_embedding:latest",
		Inputs:      retrievalInputs(),
	})
}

// retrievalInputs is shared by both strategies; they only differ in how the
// query column is interpreted by the external component.
func retrievalInputs() map[string]*registry.InputDefinition {
	return map[string]*registry.InputDefinition{
		"num_images": {
			Name:        "num_images",
			Type:        cty.Number,
			Description: "Number of candidate images to retrieve per query.",
			Default:     registry.Default(cty.NumberIntVal(2)),
		},
		"aesthetic_score": {
			Name:        "aesthetic_score",
			Type:        cty.Number,
			Description: "Aesthetic embedding bucket to bias retrieval towards, 0-9.",
			Default:     registry.Default(cty.NumberIntVal(9)),
		},
		"aesthetic_weight": {
			Name:        "aesthetic_weight",
			Type:        cty.Number,
			Description: "Weight of the aesthetic embedding against the query, 0-1.",
			Default:     registry.Default(cty.NumberFloatVal(0.5)),
		},
		"url": {
			Name:        "url",
			Type:        cty.String,
			Description: "Endpoint of the clip-retrieval backend.",
			Default:     registry.Default(cty.StringVal("https://knn.laion.ai/knn-service")),
		},
	}
}
