package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rigup/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "elmeri", cfg.User)
	assert.Equal(t, "~/Code/work", cfg.CodeDir)
	assert.Equal(t, "/opt/yay", cfg.AURHelperDir)
	assert.NotEmpty(t, cfg.DotfilesRepo)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, t.TempDir())
	t.Setenv("HOME", "/home/testuser")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "elmeri", cfg.User)
	// Empty files_dir resolves to the XDG default
	assert.NotEmpty(t, cfg.FilesDir)
	// code_dir gets ~ expanded
	assert.Equal(t, "/home/testuser/Code/work", cfg.CodeDir)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)

	content := `user = "alice"
code_dir = "/src"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, paths.ConfigFileName), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "/src", cfg.CodeDir)
	// Untouched keys keep their defaults
	assert.Equal(t, "/opt/yay", cfg.AURHelperDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)

	content := `user = "alice"`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, paths.ConfigFileName), []byte(content), 0644))

	t.Setenv("RIGUP_USER", "bob")
	t.Setenv("RIGUP_FILES_DIR", "/srv/rigup-files")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "/srv/rigup-files", cfg.FilesDir)
}

func TestLoadBadConfigFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)

	require.NoError(t, os.WriteFile(filepath.Join(configDir, paths.ConfigFileName), []byte("not [valid toml"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestMarshalTOMLRoundTrip(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	out, err := cfg.MarshalTOML()
	require.NoError(t, err)

	assert.Contains(t, out, `user = 'elmeri'`)
	assert.Contains(t, out, "code_dir")
}

func TestGetDefaultConfigContent(t *testing.T) {
	content := GetDefaultConfigContent()

	assert.Contains(t, content, "user =")
	assert.Contains(t, content, "dotfiles_repo")
}
