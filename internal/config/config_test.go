package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zenith-sql/relkit/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), core.PermFile); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	checks := map[string][2]string{
		"root":          {cfg.Root, "src"},
		"marker":        {cfg.Marker, ".version"},
		"exclude":       {cfg.Exclude, "test"},
		"remote":        {cfg.Remote, "origin"},
		"configuration": {cfg.Build.Configuration, "Release"},
		"source":        {cfg.Registry.Source, "https://api.nuget.org/v3/index.json"},
		"api-key-env":   {cfg.Registry.APIKeyEnv, "NUGET_KEY"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
	if !cfg.MustIncrease() {
		t.Error("MustIncrease should default to true")
	}
	if !cfg.SkipDuplicates() {
		t.Error("SkipDuplicates should default to true")
	}
	if cfg.TagPrefix != "" || cfg.Annotate {
		t.Errorf("tags should default to plain lightweight tags, got prefix %q annotate %v", cfg.TagPrefix, cfg.Annotate)
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(RootEnv, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "src" {
		t.Errorf("Root = %q, want src", cfg.Root)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Setenv(RootEnv, "")
	cfg, err := Load(writeConfig(t, "\n  \n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Marker != ".version" {
		t.Errorf("Marker = %q", cfg.Marker)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(RootEnv, "")
	path := writeConfig(t, `root: packages
exclude: "(bench|sample)"
tag-prefix: v
annotate: true
require-increase: false
build:
  configuration: Debug
registry:
  source: https://nuget.example.com/v3/index.json
  api-key-env: FEED_KEY
  skip-duplicate: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "packages" || cfg.TagPrefix != "v" || !cfg.Annotate {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.MustIncrease() {
		t.Error("require-increase: false not applied")
	}
	if cfg.SkipDuplicates() {
		t.Error("skip-duplicate: false not applied")
	}
	if cfg.Build.Configuration != "Debug" || cfg.Registry.APIKeyEnv != "FEED_KEY" {
		t.Errorf("nested sections not decoded: %+v", cfg)
	}
	if cfg.Marker != ".version" || cfg.Remote != "origin" {
		t.Errorf("defaults not applied to unset keys: %+v", cfg)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "root: src\nplugins: {}\n"))
	if err == nil {
		t.Fatal("expected strict decoding to reject unknown keys")
	}
}

func TestLoad_RootEnv(t *testing.T) {
	path := writeConfig(t, "root: src\n")

	t.Setenv(RootEnv, "/work/packages/")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != filepath.Clean("/work/packages") {
		t.Errorf("Root = %q", cfg.Root)
	}

	t.Setenv(RootEnv, "../elsewhere")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "path traversal") {
		t.Errorf("err = %v, want traversal error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad exclude", func(c *Config) { c.Exclude = "(" }, true},
		{"marker with dir", func(c *Config) { c.Marker = "sub/.version" }, true},
		{"marker dotdot", func(c *Config) { c.Marker = ".." }, true},
		{"remote with space", func(c *Config) { c.Remote = "my origin" }, true},
		{"remote as flag", func(c *Config) { c.Remote = "--all" }, true},
		{"tag prefix ok", func(c *Config) { c.TagPrefix = "release/v" }, false},
		{"tag prefix colon", func(c *Config) { c.TagPrefix = "v:" }, true},
		{"known theme", func(c *Config) { c.Theme = "dracula" }, false},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestExcludePattern_CaseInsensitive(t *testing.T) {
	re, err := Default().ExcludePattern()
	if err != nil {
		t.Fatalf("ExcludePattern: %v", err)
	}
	for name, want := range map[string]bool{
		"SqlTest":   true,
		"Testing":   true,
		"unittests": true,
		"Zenith":    false,
	} {
		if got := re.MatchString(name); got != want {
			t.Errorf("MatchString(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetDir("repo")
	path := "repo/" + DefaultFile

	if err := Save(ctx, fs, Default(), path, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, ok := fs.File(path)
	if !ok {
		t.Fatal("config not written")
	}
	got := string(data)
	for _, want := range []string{"# relkit configuration file", "root: src", "api-key-env: NUGET_KEY"} {
		if !strings.Contains(got, want) {
			t.Errorf("saved config missing %q:\n%s", want, got)
		}
	}

	if err := Save(ctx, fs, Default(), path, false); err == nil {
		t.Error("expected Save to refuse overwriting without force")
	}
	if err := Save(ctx, fs, Default(), path, true); err != nil {
		t.Errorf("Save with force: %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(RootEnv, "")
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)

	cfg := Default()
	cfg.TagPrefix = "v"
	cfg.Remote = "upstream"
	if err := Save(context.Background(), core.NewOSFileSystem(), cfg, path, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.TagPrefix != "v" || loaded.Remote != "upstream" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
