package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// writeManifest creates a component directory with a step.hcl under root.
func writeManifest(t *testing.T, root, component, contents string) {
	t.Helper()
	dir := filepath.Join(root, component)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "step.hcl"), []byte(contents), 0o644))
}

func TestDirResolver(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "components/generate_prompts", `
step "generate_prompts" {
  description = "Generates seed prompts for image retrieval."

  input "n_rows_to_load" {
    type    = number
    default = null
  }

  input "seed" {
    type = string
  }
}
`)

	resolver := NewDirResolver(root)

	t.Run("loads and translates a manifest", func(t *testing.T) {
		def, err := resolver.Resolve(context.Background(), "components/generate_prompts")
		require.NoError(t, err)

		assert.Equal(t, "generate_prompts", def.Name)
		require.Contains(t, def.Inputs, "n_rows_to_load")
		require.Contains(t, def.Inputs, "seed")

		rows := def.Inputs["n_rows_to_load"]
		assert.Equal(t, cty.Number, rows.Type)
		require.NotNil(t, rows.Default)
		assert.True(t, rows.Default.IsNull())

		seed := def.Inputs["seed"]
		assert.Equal(t, cty.String, seed.Type)
		assert.Nil(t, seed.Default, "input without default must be required")
	})

	t.Run("missing directory returns ErrNotFound", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "components/nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDirResolverRejectsBadManifests(t *testing.T) {
	root := t.TempDir()

	t.Run("invalid type expression", func(t *testing.T) {
		writeManifest(t, root, "bad_type", `
step "bad_type" {
  input "x" {
    type = telepathy
  }
}
`)
		_, err := NewDirResolver(root).Resolve(context.Background(), "./bad_type")
		assert.ErrorContains(t, err, "invalid type expression")
	})

	t.Run("default incompatible with declared type", func(t *testing.T) {
		writeManifest(t, root, "bad_default", `
step "bad_default" {
  input "x" {
    type    = number
    default = "not-a-number"
  }
}
`)
		_, err := NewDirResolver(root).Resolve(context.Background(), "./bad_default")
		assert.ErrorContains(t, err, "default does not match type")
	})

	t.Run("manifest without a step block", func(t *testing.T) {
		writeManifest(t, root, "empty", "\n")
		_, err := NewDirResolver(root).Resolve(context.Background(), "./empty")
		assert.ErrorContains(t, err, "declares no step block")
	})
}
