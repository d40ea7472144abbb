package initialize

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/logging"
	"github.com/zenith-sql/relkit/internal/printer"
)

func setup(t *testing.T) (*clix.Env, *core.MockFileSystem, *bytes.Buffer) {
	t.Helper()
	fs := core.NewMockFileSystem()
	fs.SetFile("src/Zenith/.version", []byte("1.0.0"))
	fs.SetFile("src/SqlSharp/.version", []byte("0.4.0"))
	fs.SetDir("src/SqlTest")

	var out bytes.Buffer
	printer.SetOutput(&out)
	printer.SetNoColor(true)
	t.Cleanup(func() {
		printer.SetOutput(nil)
		printer.SetNoColor(false)
	})
	return &clix.Env{FS: fs, Log: logging.Nop()}, fs, &out
}

func runInitCmd(env *clix.Env, args ...string) error {
	return Run(env).Run(context.Background(), append([]string{"init"}, args...))
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	env, fs, out := setup(t)

	if err := runInitCmd(env); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, ok := fs.File(config.DefaultFile)
	if !ok {
		t.Fatal("config file not written")
	}
	if !strings.Contains(string(data), "root: src") {
		t.Errorf("config = %s", data)
	}
	if !strings.Contains(out.String(), "Found 2 versioned project(s) under src") {
		t.Errorf("output = %q", out.String())
	}
}

func TestInit_Flags(t *testing.T) {
	env, fs, _ := setup(t)

	if err := runInitCmd(env, "--root", "packages", "--remote", "upstream", "--tag-prefix", "v"); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, _ := fs.File(config.DefaultFile)
	for _, want := range []string{"root: packages", "remote: upstream", "tag-prefix: v"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}
}

func TestInit_MissingRootWarns(t *testing.T) {
	env, _, out := setup(t)

	if err := runInitCmd(env, "--root", "packages"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), `No project directory at "packages"`) {
		t.Errorf("output = %q", out.String())
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	env, fs, _ := setup(t)
	fs.SetFile(config.DefaultFile, []byte("root: custom\n"))

	if err := runInitCmd(env); err == nil {
		t.Fatal("expected error for existing config")
	}
	if data, _ := fs.File(config.DefaultFile); string(data) != "root: custom\n" {
		t.Errorf("existing config modified: %q", data)
	}

	if err := runInitCmd(env, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	if data, _ := fs.File(config.DefaultFile); !strings.Contains(string(data), "root: src") {
		t.Errorf("config not replaced: %q", data)
	}
}

func TestInit_InvalidRemote(t *testing.T) {
	env, fs, _ := setup(t)

	if err := runInitCmd(env, "--remote", "my origin"); err == nil {
		t.Fatal("expected validation error")
	}
	if _, ok := fs.File(config.DefaultFile); ok {
		t.Error("invalid config written")
	}
}
