package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weftlabs/weft/internal/ctxlog"
	"github.com/weftlabs/weft/internal/model"
	"github.com/weftlabs/weft/internal/pipeline"
	"github.com/weftlabs/weft/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Run loads the pipeline definition, builds and validates the graph, and
// writes the finalized plan.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	spec, err := model.Load(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline definition: %w", err)
	}

	p, err := a.buildPipeline(ctx, spec)
	if err != nil {
		return err
	}

	pln, err := p.Finalize(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize pipeline: %w", err)
	}
	a.logger.Info("Pipeline plan finalized.", "pipeline", pln.Name, "ops", len(pln.Ops))

	encoded, err := pln.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
		a.logger.Info("Plan written.", "path", a.config.OutputPath)
		return nil
	}

	_, err = fmt.Fprintln(a.outW, string(encoded))
	return err
}

// buildPipeline translates the loaded definition into a pipeline via the
// builder API, appending the optional publish op when credentials are
// configured.
func (a *App) buildPipeline(ctx context.Context, spec *model.Spec) (*pipeline.Pipeline, error) {
	basePath := spec.BasePath
	if a.config.BasePath != "" {
		basePath = a.config.BasePath
	}

	resolver := registry.NewRefResolver(a.registry, registry.NewDirResolver(a.componentRoot()))

	p, err := pipeline.New(ctx, spec.Name, spec.Description, basePath, pipeline.WithResolver(resolver))
	if err != nil {
		return nil, err
	}

	for _, op := range spec.Ops {
		opts := []pipeline.OpOption{pipeline.WithName(op.Name)}
		if len(op.DependsOn) > 0 {
			opts = append(opts, pipeline.WithDependsOn(op.DependsOn...))
		}
		if op.Resources != nil {
			opts = append(opts, pipeline.WithResources(op.Resources.Accelerator, op.Resources.Count))
		}
		if _, err := p.AddOp(ctx, op.Ref, op.Arguments, opts...); err != nil {
			return nil, err
		}
	}

	if spec.Publish != nil {
		if err := a.appendPublishOp(ctx, p, spec); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// appendPublishOp adds the terminal publish op if and only if both hub
// credentials are non-empty. The decision is made here, once, before the
// op exists anywhere in the graph.
func (a *App) appendPublishOp(ctx context.Context, p *pipeline.Pipeline, spec *model.Spec) error {
	logger := ctxlog.FromContext(ctx)

	if !a.config.PublishEnabled() {
		logger.Info("Publish step skipped: hub credentials are not configured.")
		return nil
	}
	if len(spec.Ops) == 0 {
		return fmt.Errorf("pipeline %q has a publish block but no ops to publish", spec.Name)
	}

	args := map[string]cty.Value{
		"username":     cty.StringVal(a.config.HubUser),
		"hf_token":     cty.StringVal(a.config.HubToken),
		"dataset_name": cty.StringVal(spec.Publish.DatasetName),
	}
	if len(spec.Publish.ImageColumns) > 0 {
		cols := make([]cty.Value, 0, len(spec.Publish.ImageColumns))
		for _, col := range spec.Publish.ImageColumns {
			cols = append(cols, cty.StringVal(col))
		}
		args["image_column_names"] = cty.ListVal(cols)
	}
	if len(spec.Publish.ColumnMapping) > 0 {
		mapping := make(map[string]cty.Value, len(spec.Publish.ColumnMapping))
		for from, to := range spec.Publish.ColumnMapping {
			mapping[from] = cty.StringVal(to)
		}
		args["column_name_mapping"] = cty.MapVal(mapping)
	}

	last := spec.Ops[len(spec.Ops)-1].Name
	_, err := p.AddOp(ctx, spec.Publish.Ref, args, pipeline.WithDependsOn(last))
	if err != nil {
		return fmt.Errorf("failed to append publish op: %w", err)
	}
	logger.Debug("Publish op appended.", "ref", spec.Publish.Ref, "after", last)
	return nil
}

// componentRoot is the directory local component references are resolved
// against: the pipeline file's directory, or the path itself when it is
// already a directory.
func (a *App) componentRoot() string {
	info, err := os.Stat(a.config.PipelinePath)
	if err == nil && info.IsDir() {
		return a.config.PipelinePath
	}
	return filepath.Dir(a.config.PipelinePath)
}
