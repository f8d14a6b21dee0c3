package registry

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ErrInvalidArgument is returned when an argument map does not satisfy a
// step's declared inputs.
var ErrInvalidArgument = errors.New("invalid step argument")

// ValidateArguments checks the given arguments against the step's declared
// inputs and returns a normalized copy: values converted to their declared
// types and defaults filled in for omitted optional inputs.
func ValidateArguments(def *StepDefinition, args map[string]cty.Value) (map[string]cty.Value, error) {
	normalized := make(map[string]cty.Value, len(def.Inputs))

	for name, val := range args {
		input, ok := def.Inputs[name]
		if !ok {
			return nil, fmt.Errorf("step %q: %w: unknown argument %q", def.Name, ErrInvalidArgument, name)
		}
		converted, err := convert.Convert(val, input.Type)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w: argument %q is not convertible to %s: %v",
				def.Name, ErrInvalidArgument, name, input.Type.FriendlyName(), err)
		}
		normalized[name] = converted
	}

	for name, input := range def.Inputs {
		if _, ok := normalized[name]; ok {
			continue
		}
		if input.Default != nil {
			normalized[name] = *input.Default
			continue
		}
		return nil, fmt.Errorf("step %q: %w: required argument %q is missing", def.Name, ErrInvalidArgument, name)
	}

	return normalized, nil
}
