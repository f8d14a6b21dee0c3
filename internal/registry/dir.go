package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/weftlabs/weft/internal/ctxlog"
	"github.com/weftlabs/weft/internal/schema"
	"github.com/zclconf/go-cty/cty/convert"
)

// manifestFileName is the expected manifest inside a component directory.
const manifestFileName = "step.hcl"

// DirResolver resolves path-shaped step references against component
// directories on disk. Relative references are resolved against root,
// which is normally the directory of the pipeline file.
type DirResolver struct {
	root string
}

// NewDirResolver creates a resolver rooted at the given directory.
func NewDirResolver(root string) *DirResolver {
	return &DirResolver{root: root}
}

// Resolve loads and translates the step.hcl manifest of the referenced
// component directory. It implements Resolver.
func (d *DirResolver) Resolve(ctx context.Context, ref string) (*StepDefinition, error) {
	logger := ctxlog.FromContext(ctx)

	dir := ref
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(d.root, ref)
	}
	manifestPath := filepath.Join(dir, manifestFileName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("%w: component directory %q has no %s: %v", ErrNotFound, ref, manifestFileName, err)
	}
	logger.Debug("Loading component manifest.", "ref", ref, "path", manifestPath)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(manifestPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, diags)
	}

	var manifest schema.ManifestFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", manifestPath, diags)
	}
	if manifest.Step == nil {
		return nil, fmt.Errorf("manifest %s declares no step block", manifestPath)
	}

	return newDefinitionFromManifest(manifest.Step, manifestPath)
}

// newDefinitionFromManifest translates a decoded manifest into a
// StepDefinition, resolving input type expressions into concrete cty types.
func newDefinitionFromManifest(m *schema.StepManifest, manifestPath string) (*StepDefinition, error) {
	def := &StepDefinition{
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Accelerator: m.Accelerator,
		Inputs:      make(map[string]*InputDefinition, len(m.Inputs)),
	}

	for _, in := range m.Inputs {
		if _, exists := def.Inputs[in.Name]; exists {
			return nil, fmt.Errorf("manifest %s declares input %q twice", manifestPath, in.Name)
		}

		typ, diags := typeexpr.TypeConstraint(in.Type)
		if diags.HasErrors() {
			return nil, fmt.Errorf("manifest %s, input %q: invalid type expression: %w", manifestPath, in.Name, diags)
		}

		input := &InputDefinition{
			Name:        in.Name,
			Type:        typ,
			Description: in.Description,
		}
		if in.Default != nil {
			converted, err := convert.Convert(*in.Default, typ)
			if err != nil {
				return nil, fmt.Errorf("manifest %s, input %q: default does not match type %s: %w", manifestPath, in.Name, typ.FriendlyName(), err)
			}
			input.Default = &converted
		}
		def.Inputs[in.Name] = input
	}

	return def, nil
}
