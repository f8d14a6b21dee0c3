package model

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/weftlabs/weft/internal/ctxlog"
	"github.com/weftlabs/weft/internal/fsutil"
	"github.com/weftlabs/weft/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Load reads a pipeline definition from a path — a single .hcl file or a
// directory searched recursively — and translates it into a Spec. Multiple
// files are merged; exactly one pipeline block must exist across all of
// them.
func Load(ctx context.Context, path string) (*Spec, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findDefinitionFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl pipeline definition found at %s", path)
	}
	logger.Debug("Loading pipeline definition.", "path", path, "files", files)

	parser := hclparse.NewParser()
	spec := &Spec{}
	var publishes []*schema.Publish

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var parsed schema.PipelineFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, pl := range parsed.Pipelines {
			if spec.Name != "" {
				return nil, fmt.Errorf("%s: pipeline %q conflicts with already-declared pipeline %q", file, pl.Name, spec.Name)
			}
			spec.Name = pl.Name
			spec.Description = pl.Description
			spec.BasePath = pl.BasePath
		}

		for _, op := range parsed.Ops {
			translated, err := newOpFromHCL(op, file)
			if err != nil {
				return nil, err
			}
			spec.Ops = append(spec.Ops, translated)
		}
		publishes = append(publishes, parsed.Publish...)
	}

	if spec.Name == "" {
		return nil, fmt.Errorf("no pipeline block found at %s", path)
	}
	if len(publishes) > 1 {
		return nil, fmt.Errorf("at most one publish block is allowed, found %d", len(publishes))
	}
	if len(publishes) == 1 {
		pub := publishes[0]
		spec.Publish = &Publish{
			Ref:           pub.StepRef,
			DatasetName:   pub.DatasetName,
			ImageColumns:  pub.ImageColumns,
			ColumnMapping: pub.ColumnMapping,
		}
	}

	logger.Info("Pipeline definition loaded.", "pipeline", spec.Name, "ops", len(spec.Ops))
	return spec, nil
}

// findDefinitionFiles accepts either a single file or a directory tree.
func findDefinitionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read pipeline path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}

// newOpFromHCL translates a decoded op block, evaluating its argument
// expressions. Arguments must be literals: a pipeline definition declares
// configuration, it does not compute.
func newOpFromHCL(op *schema.Op, file string) (*Op, error) {
	translated := &Op{
		Ref:       op.StepRef,
		Name:      op.Name,
		DependsOn: op.DependsOn,
	}

	if op.Arguments != nil {
		attrs, diags := op.Arguments.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: op %q: invalid arguments block: %w", file, op.Name, diags)
		}
		translated.Arguments = make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: op %q: argument %q must be a literal value: %w", file, op.Name, name, diags)
			}
			translated.Arguments[name] = val
		}
	}

	if op.Resources != nil {
		count := op.Resources.Count
		if count == 0 {
			count = 1
		}
		translated.Resources = &Resources{
			Accelerator: op.Resources.Accelerator,
			Count:       count,
		}
	}

	return translated, nil
}
