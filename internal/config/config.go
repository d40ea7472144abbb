// Package config loads and saves the .relkit.yaml configuration.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/zenith-sql/relkit/internal/core"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".relkit.yaml"

// RootEnv overrides Config.Root when set.
const RootEnv = "RELKIT_ROOT"

// BuildConfig configures the build toolchain invocation.
type BuildConfig struct {
	Configuration string `yaml:"configuration"`
}

// RegistryConfig configures where packages are pushed.
type RegistryConfig struct {
	Source        string `yaml:"source"`
	APIKeyEnv     string `yaml:"api-key-env"`
	SkipDuplicate *bool  `yaml:"skip-duplicate,omitempty"`
}

// Config is the main configuration structure for relkit.
type Config struct {
	// Root is the directory holding one subdirectory per project.
	Root string `yaml:"root"`

	// Marker is the version file name inside each project directory.
	Marker string `yaml:"marker"`

	// Exclude is a case-insensitive regular expression; matching project
	// directory names are skipped.
	Exclude string `yaml:"exclude"`

	// Remote receives pushed tags.
	Remote string `yaml:"remote"`

	// TagPrefix is prepended to the version to form the tag name.
	TagPrefix string `yaml:"tag-prefix,omitempty"`

	// Annotate creates annotated tags instead of lightweight ones.
	Annotate bool `yaml:"annotate,omitempty"`

	// RequireIncrease rejects explicit versions that are not greater
	// than the current one.
	RequireIncrease *bool `yaml:"require-increase,omitempty"`

	// Theme names the prompt theme.
	Theme string `yaml:"theme,omitempty"`

	Build    BuildConfig    `yaml:"build"`
	Registry RegistryConfig `yaml:"registry"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "src"
	}
	if c.Marker == "" {
		c.Marker = ".version"
	}
	if c.Exclude == "" {
		c.Exclude = "test"
	}
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.RequireIncrease == nil {
		c.RequireIncrease = boolPtr(true)
	}
	if c.Build.Configuration == "" {
		c.Build.Configuration = "Release"
	}
	if c.Registry.Source == "" {
		c.Registry.Source = "https://api.nuget.org/v3/index.json"
	}
	if c.Registry.APIKeyEnv == "" {
		c.Registry.APIKeyEnv = "NUGET_KEY"
	}
	if c.Registry.SkipDuplicate == nil {
		c.Registry.SkipDuplicate = boolPtr(true)
	}
}

// MustIncrease reports whether explicit versions must be greater than the current one.
func (c *Config) MustIncrease() bool {
	return c.RequireIncrease == nil || *c.RequireIncrease
}

// SkipDuplicates reports whether pushes pass --skip-duplicate.
func (c *Config) SkipDuplicates() bool {
	return c.Registry.SkipDuplicate == nil || *c.Registry.SkipDuplicate
}

func boolPtr(b bool) *bool { return &b }

// LoadFn is swapped in tests.
var LoadFn = Load

// Load reads the configuration at path, falling back to defaults when the
// file does not exist. An empty path means DefaultFile.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(data)) > 0 {
			decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
			if err := decoder.Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if envRoot := os.Getenv(RootEnv); envRoot != "" {
		cleanPath := filepath.Clean(envRoot)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", RootEnv)
		}
		cfg.Root = cleanPath
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const header = `# relkit configuration file
#
# root:      directory holding one subdirectory per project
# marker:    version file inside each project directory
# exclude:   case-insensitive pattern; matching project names are skipped
# remote:    git remote that receives pushed tags
# registry:  package feed used by "relkit deploy"; the API key is read
#            from the environment variable named by api-key-env

`

// Save writes cfg to path with a commented header, refusing to replace an
// existing file unless force is set. An empty path means DefaultFile.
func Save(ctx context.Context, fsys core.FileSystem, cfg *Config, path string, force bool) error {
	if path == "" {
		path = DefaultFile
	}
	if !force {
		if _, err := fsys.Stat(ctx, path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", path, err)
	}
	if err := fsys.WriteFile(ctx, path, append([]byte(header), data...), core.PermFile); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}
