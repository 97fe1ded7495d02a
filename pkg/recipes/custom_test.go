package recipes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCustom(t *testing.T) {
	t.Run("missing file contributes nothing", func(t *testing.T) {
		out, err := LoadCustom("/nonexistent/recipes.yaml")
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("valid file", func(t *testing.T) {
		path := writeRecipesFile(t, `
recipes:
  - name: hello
    summary: Say hello
    directives:
      - echo hello
      - echo world
  - name: clip
    directives:
      - echo secret | xclip
    dependency:
      - sudo pacman -S --noconfirm xclip
`)
		out, err := LoadCustom(path)
		require.NoError(t, err)
		require.Len(t, out, 2)

		assert.Equal(t, "hello", out[0].Name)
		assert.Equal(t, "Say hello", out[0].Summary)
		assert.Equal(t, "clip", out[1].Name)
		assert.Equal(t, "User-defined recipe", out[1].Summary)
	})

	t.Run("unreadable path", func(t *testing.T) {
		// A directory exists but cannot be read as a file
		_, err := LoadCustom(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeRecipesFile(t, "recipes: [unclosed")
		_, err := LoadCustom(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRecipeLoad))
	})

	t.Run("recipe without name", func(t *testing.T) {
		path := writeRecipesFile(t, `
recipes:
  - summary: nameless
    directives: [echo hi]
`)
		_, err := LoadCustom(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRecipeLoad))
	})

	t.Run("recipe without directives", func(t *testing.T) {
		path := writeRecipesFile(t, `
recipes:
  - name: empty
`)
		_, err := LoadCustom(path)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRecipeLoad))
	})
}

func TestCustomRecipeRuns(t *testing.T) {
	dir := t.TempDir()
	path := writeRecipesFile(t, `
recipes:
  - name: toucher
    directives:
      - cd `+dir+`
      - touch made-by-custom
`)
	out, err := LoadCustom(path)
	require.NoError(t, err)
	require.Len(t, out, 1)

	var buf bytes.Buffer
	ctx := NewContext(runner.New(), &config.Config{})
	ctx.Opts = &runner.Options{Stdout: &buf, Stderr: &buf}

	require.NoError(t, out[0].Run(ctx, nil))
	assert.FileExists(t, filepath.Join(dir, "made-by-custom"))
}

func TestCustomRecipeDependencyRemediates(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag")
	path := writeRecipesFile(t, `
recipes:
  - name: guarded
    directives:
      - test -f `+flag+`
    dependency:
      - touch `+flag+`
`)
	out, err := LoadCustom(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	ctx := NewContext(runner.New(), &config.Config{})
	ctx.Opts = &runner.Options{Stdout: &buf, Stderr: &buf}

	require.NoError(t, out[0].Run(ctx, nil))
	assert.FileExists(t, flag)
}

func TestNewRegistryRejectsShadowingBuiltins(t *testing.T) {
	path := writeRecipesFile(t, `
recipes:
  - name: update
    directives: [echo shadowed]
`)
	_, err := NewRegistry(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRecipeLoad))
}

func TestNewRegistryMergesCustomRecipes(t *testing.T) {
	path := writeRecipesFile(t, `
recipes:
  - name: hello
    directives: [echo hello]
`)
	reg, err := NewRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, len(Builtins())+1, reg.Count())
	assert.True(t, reg.Has("hello"))
}
