// Package config loads rigup's configuration by layering the embedded
// defaults, the user's rigup.toml, and RIGUP_* environment variables,
// in that order of precedence (later wins).
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	tomlv2 "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/paths"
)

// EnvPrefix is the prefix for configuration environment variables
const EnvPrefix = "RIGUP_"

// Config holds the values the recipes parameterize on
type Config struct {
	// User is the unprivileged account system recipes create and use
	User string `koanf:"user" toml:"user"`

	// FilesDir holds deployable payload files; empty means the XDG default
	FilesDir string `koanf:"files_dir" toml:"files_dir"`

	// DotfilesRepo is the bare repository cloned by the dotfiles recipe
	DotfilesRepo string `koanf:"dotfiles_repo" toml:"dotfiles_repo"`

	// CodeDir is the root for source checkouts made by development recipes
	CodeDir string `koanf:"code_dir" toml:"code_dir"`

	// AURHelperDir is where the AUR helper gets built
	AURHelperDir string `koanf:"aur_helper_dir" toml:"aur_helper_dir"`

	// SSHComment is embedded in generated SSH keys
	SSHComment string `koanf:"ssh_comment" toml:"ssh_comment"`
}

// Load builds the effective configuration: embedded defaults, then the
// user's config file if present, then RIGUP_* environment overrides
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	configFile := paths.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load config from %s", configFile)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if cfg.FilesDir == "" {
		cfg.FilesDir = paths.FilesDir()
	}
	cfg.FilesDir = paths.ExpandPath(cfg.FilesDir)
	cfg.CodeDir = paths.ExpandPath(cfg.CodeDir)

	return &cfg, nil
}

// Default returns the configuration with only the embedded defaults applied
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// MarshalTOML renders the configuration as a TOML document, for genconfig
func (c *Config) MarshalTOML() (string, error) {
	out, err := tomlv2.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal config")
	}
	return string(out), nil
}
