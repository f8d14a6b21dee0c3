package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftlabs/weft/internal/plan"
)

const fixturePipeline = `
pipeline "controlnet" {
  description = "Pipeline that collects data to train ControlNet"
  base_path   = "./data_dir"
}

op "components/generate_prompts" "prompts" {
  arguments {
    n_rows_to_load = 10
  }
}

op "retrieve_laion_by_prompt" "laion" {
  depends_on = ["prompts"]

  arguments {
    num_images       = 2
    aesthetic_score  = 9
    aesthetic_weight = 0.5
  }
}

op "download_images" "images" {
  depends_on = ["laion"]

  arguments {
    timeout              = 1
    retries              = 0
    image_size           = 512
    resize_mode          = "center_crop"
    resize_only_if_bigger = false
    min_image_size       = 0
    max_aspect_ratio     = 2.5
  }
}

op "caption_images" "captions" {
  depends_on = ["images"]

  arguments {
    model_id       = "Salesforce/blip-image-captioning-base"
    batch_size     = 8
    max_new_tokens = 50
  }
}

op "segment_images" "segmentations" {
  depends_on = ["captions"]

  arguments {
    model_id   = "openmmlab/upernet-convnext-small"
    batch_size = 8
  }
}

publish "components/write_to_hub_controlnet" {
  dataset_name  = "controlnet-dataset"
  image_columns = ["image"]

  column_name_mapping = {
    image        = "image"
    image_width  = "width"
    image_height = "height"
  }
}
`

const fixturePromptsManifest = `
step "generate_prompts" {
  description = "Generates seed prompts for retrieval."

  input "n_rows_to_load" {
    type    = number
    default = null
  }
}
`

const fixtureHubManifest = `
step "write_to_hub_controlnet" {
  description = "Uploads the ControlNet dataset to the hub."

  input "username" {
    type = string
  }

  input "hf_token" {
    type = string
  }

  input "dataset_name" {
    type = string
  }

  input "image_column_names" {
    type    = list(string)
    default = []
  }

  input "column_name_mapping" {
    type    = map(string)
    default = {}
  }
}
`

// writeFixture lays out a pipeline definition with two local component
// directories, mirroring a real project layout.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(rel, contents string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	write("pipeline.hcl", fixturePipeline)
	write("components/generate_prompts/step.hcl", fixturePromptsManifest)
	write("components/write_to_hub_controlnet/step.hcl", fixtureHubManifest)

	return dir
}

// runApp runs a full load-build-finalize cycle and decodes the emitted plan.
func runApp(t *testing.T, cfg Config) *plan.Plan {
	t.Helper()

	cfg.LogFormat = "json"
	cfg.LogLevel = "error"
	if cfg.BasePath == "" {
		cfg.BasePath = filepath.Join(t.TempDir(), "data_dir")
	}

	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := NewApp(out, io.Discard, config)
	require.NoError(t, a.Run(context.Background()))

	var pln plan.Plan
	require.NoError(t, json.Unmarshal(out.Bytes(), &pln))
	return &pln
}

func TestRunProducesLinearPlan(t *testing.T) {
	dir := writeFixture(t)
	pln := runApp(t, Config{PipelinePath: filepath.Join(dir, "pipeline.hcl")})

	assert.Equal(t, "controlnet", pln.Name)
	assert.NotEmpty(t, pln.ID)

	wantOrder := []string{"prompts", "laion", "images", "captions", "segmentations"}
	require.Len(t, pln.Ops, len(wantOrder), "no publish op without credentials")
	for i, op := range pln.Ops {
		assert.Equal(t, wantOrder[i], op.Name)
		if i == 0 {
			assert.Empty(t, op.DependsOn)
		} else {
			assert.Equal(t, []string{wantOrder[i-1]}, op.DependsOn)
		}
	}

	captions := pln.Ops[3]
	require.NotNil(t, captions.Resources, "caption step recommends an accelerator")
	assert.Equal(t, "GPU", captions.Resources.Accelerator)
	assert.JSONEq(t, `"Salesforce/blip-image-captioning-base"`, string(captions.Arguments["model_id"]))

	images := pln.Ops[2]
	assert.JSONEq(t, `512`, string(images.Arguments["image_size"]))
	assert.JSONEq(t, `2.5`, string(images.Arguments["max_aspect_ratio"]))
}

func TestRunAppendsPublishOpWithCredentials(t *testing.T) {
	dir := writeFixture(t)
	pln := runApp(t, Config{
		PipelinePath: filepath.Join(dir, "pipeline.hcl"),
		HubUser:      "tester",
		HubToken:     "hf_secret",
	})

	require.Len(t, pln.Ops, 6)
	publish := pln.Ops[5]
	assert.Equal(t, "write_to_hub_controlnet", publish.Name)
	assert.Equal(t, "components/write_to_hub_controlnet", publish.Ref)
	assert.Equal(t, []string{"segmentations"}, publish.DependsOn)
	assert.JSONEq(t, `"tester"`, string(publish.Arguments["username"]))
	assert.JSONEq(t, `"hf_secret"`, string(publish.Arguments["hf_token"]))
	assert.JSONEq(t, `"controlnet-dataset"`, string(publish.Arguments["dataset_name"]))
	assert.JSONEq(t, `["image"]`, string(publish.Arguments["image_column_names"]))
}

func TestRunWithOnlyOneCredentialSkipsPublish(t *testing.T) {
	dir := writeFixture(t)
	pln := runApp(t, Config{
		PipelinePath: filepath.Join(dir, "pipeline.hcl"),
		HubUser:      "tester", // token missing
	})
	assert.Len(t, pln.Ops, 5)
}

func TestRunWritesPlanFile(t *testing.T) {
	dir := writeFixture(t)
	outPath := filepath.Join(t.TempDir(), "plan.json")

	config, err := NewConfig(Config{
		PipelinePath: filepath.Join(dir, "pipeline.hcl"),
		OutputPath:   outPath,
		BasePath:     filepath.Join(t.TempDir(), "data_dir"),
		LogFormat:    "json",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	a := NewApp(io.Discard, io.Discard, config)
	require.NoError(t, a.Run(context.Background()))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var pln plan.Plan
	require.NoError(t, json.Unmarshal(raw, &pln))
	assert.Len(t, pln.Ops, 5)
}

func TestRunRejectsForwardDependency(t *testing.T) {
	dir := t.TempDir()
	definition := `
pipeline "broken" {
  base_path = "./data_dir"
}

op "caption_images" "captions" {
  depends_on = ["segmentations"]
}

op "segment_images" "segmentations" {}
`
	path := filepath.Join(dir, "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(definition), 0o644))

	config, err := NewConfig(Config{
		PipelinePath: path,
		BasePath:     filepath.Join(t.TempDir(), "data_dir"),
		LogFormat:    "json",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	a := NewApp(io.Discard, io.Discard, config)
	err = a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "dependencies must be added first")
}

func TestNewConfigRequiresPipelinePath(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.ErrorContains(t, err, "PipelinePath is a required configuration field")
}
