// Package plan defines the finalized, immutable representation of a
// pipeline graph: ops in stable topological order with resolved arguments,
// ready to be handed to an external execution engine as JSON.
package plan

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Resources describes the accelerator requirements of a single op.
type Resources struct {
	Accelerator string `json:"accelerator"`
	Count       int    `json:"count"`
}

// Op is one finalized pipeline operation. Arguments are pre-encoded JSON so
// the plan round-trips without knowledge of cty types.
type Op struct {
	Name      string                     `json:"name"`
	Ref       string                     `json:"ref"`
	Image     string                     `json:"image,omitempty"`
	Arguments map[string]json.RawMessage `json:"arguments,omitempty"`
	Resources *Resources                 `json:"resources,omitempty"`
	DependsOn []string                   `json:"depends_on,omitempty"`
}

// Plan is the immutable result of finalizing a pipeline. Ops appear in
// topological order: every op comes after all of its dependencies.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BasePath    string `json:"base_path"`
	Ops         []Op   `json:"ops"`
}

// Encode writes the plan as indented JSON.
func (p *Plan) Encode() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// EncodeArguments converts a resolved cty argument map into the wire form
// used by Op.Arguments.
func EncodeArguments(args map[string]cty.Value) (map[string]json.RawMessage, error) {
	if len(args) == 0 {
		return nil, nil
	}
	encoded := make(map[string]json.RawMessage, len(args))
	for name, val := range args {
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument %q: %w", name, err)
		}
		encoded[name] = raw
	}
	return encoded, nil
}
