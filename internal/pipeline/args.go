package pipeline

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Args converts a map of plain Go values into cty values using their
// implied types. It exists so programmatic callers don't have to construct
// cty values by hand; HCL-loaded pipelines arrive as cty already.
func Args(values map[string]any) (map[string]cty.Value, error) {
	args := make(map[string]cty.Value, len(values))
	for name, v := range values {
		if v == nil {
			args[name] = cty.NullVal(cty.DynamicPseudoType)
			continue
		}
		typ, err := gocty.ImpliedType(v)
		if err != nil {
			return nil, fmt.Errorf("argument %q: cannot imply a type from %T: %w", name, v, err)
		}
		val, err := gocty.ToCtyValue(v, typ)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		args[name] = val
	}
	return args, nil
}

// MustArgs is Args for literal maps; it panics on conversion failure.
func MustArgs(values map[string]any) map[string]cty.Value {
	args, err := Args(values)
	if err != nil {
		panic(err)
	}
	return args
}
