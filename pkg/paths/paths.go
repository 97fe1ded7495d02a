// Package paths provides centralized path handling for rigup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for rigup
	EnvConfigDir = "RIGUP_CONFIG_DIR"

	// EnvFilesDir overrides the directory holding deployable payload files
	// (udev rules, hosts, locale.conf, global.bashrc, ...)
	EnvFilesDir = "RIGUP_FILES_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for rigup-specific files
	AppDirName = "rigup"

	// ConfigFileName is the name of the main configuration file
	ConfigFileName = "rigup.toml"

	// RecipesFileName is the name of the user-defined recipes file
	RecipesFileName = "recipes.yaml"

	// FilesDirName is the subdirectory for deployable payload files
	FilesDirName = "files"
)

// ConfigDir returns the rigup configuration directory.
// RIGUP_CONFIG_DIR takes precedence over the XDG config home.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path to the main configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// RecipesFile returns the path to the user-defined recipes file
func RecipesFile() string {
	return filepath.Join(ConfigDir(), RecipesFileName)
}

// DataDir returns the rigup data directory
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppDirName)
}

// FilesDir returns the directory holding deployable payload files.
// RIGUP_FILES_DIR takes precedence over the XDG data home.
func FilesDir() string {
	if dir := os.Getenv(EnvFilesDir); dir != "" {
		return dir
	}
	return filepath.Join(DataDir(), FilesDirName)
}

// StateDir returns the rigup state directory (logs and the like).
// XDG_STATE_HOME is read from the environment directly so overrides
// set after process start are honored.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return os.ExpandEnv(path)
}
