// Package release runs the build, test and package push steps of a release.
//
// Project versions are handed to the toolchain as child-process
// environment on each invocation; the relkit process environment is left
// untouched.
package release

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/discovery"
)

var (
	// ErrStepFailed is returned when build or test exits non-zero or writes to stderr.
	ErrStepFailed = errors.New("release step failed")

	// ErrMissingAPIKey is returned by Deploy when no registry key is configured.
	ErrMissingAPIKey = errors.New("registry API key is not set")
)

const (
	packageExt   = ".nupkg"
	localPackage = "local.nupkg"
)

// BuildContext carries the explicit inputs of a build or test run.
type BuildContext struct {
	// Configuration is passed to "dotnet build -c".
	Configuration string

	// Versions maps <Project>_PACKAGE_VERSION to the project's marker value.
	Versions map[string]string
}

// Env renders Versions as sorted KEY=VALUE pairs.
func (bc BuildContext) Env() []string {
	keys := slices.Sorted(maps.Keys(bc.Versions))
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+bc.Versions[k])
	}
	return env
}

// PackageVersions builds the version map from versioned projects.
func PackageVersions(projects []discovery.Project) map[string]string {
	versions := make(map[string]string, len(projects))
	for _, p := range projects {
		if !p.Versioned {
			continue
		}
		versions[p.PackageVersionKey()] = p.Version
	}
	return versions
}

// PushOptions configures a registry push.
type PushOptions struct {
	Source        string
	APIKey        string
	SkipDuplicate bool
}

// PushReport summarises a push run; per-package failures do not stop it.
type PushReport struct {
	Pushed []string
	Failed map[string]error
}

// OK reports whether every package was pushed.
func (r PushReport) OK() bool {
	return len(r.Failed) == 0
}

// Pipeline runs toolchain commands through a CommandRunner.
type Pipeline struct {
	runner core.CommandRunner
	fs     core.FileSystem
	dir    string
	log    zerolog.Logger
}

// NewPipeline creates a pipeline that runs commands in dir.
func NewPipeline(runner core.CommandRunner, fsys core.FileSystem, dir string, log zerolog.Logger) *Pipeline {
	return &Pipeline{runner: runner, fs: fsys, dir: dir, log: log}
}

// Build runs "dotnet build -c <configuration>".
func (p *Pipeline) Build(ctx context.Context, bc BuildContext) (core.Output, error) {
	cfg := bc.Configuration
	if cfg == "" {
		cfg = "Release"
	}
	return p.step(ctx, "build", core.Command{Name: "dotnet", Args: []string{"build", "-c", cfg}, Env: bc.Env()})
}

// Test runs "dotnet test".
func (p *Pipeline) Test(ctx context.Context, bc BuildContext) (core.Output, error) {
	return p.step(ctx, "test", core.Command{Name: "dotnet", Args: []string{"test"}, Env: bc.Env()})
}

// step treats a non-zero exit or any stderr output as fatal.
func (p *Pipeline) step(ctx context.Context, name string, cmd core.Command) (core.Output, error) {
	cmd.Dir = p.dir
	p.log.Debug().Str("step", name).Str("cmd", cmd.String()).Strs("env", cmd.Env).Msg("running")

	out, err := p.runner.Run(ctx, cmd)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %w%s", ErrStepFailed, name, err, stderrSuffix(out))
	}
	if strings.TrimSpace(out.Stderr) != "" {
		return out, fmt.Errorf("%w: %s wrote to stderr%s", ErrStepFailed, name, stderrSuffix(out))
	}
	return out, nil
}

func stderrSuffix(out core.Output) string {
	if msg := strings.TrimSpace(out.Stderr); msg != "" {
		return "\n" + msg
	}
	return ""
}

// FindPackages walks root for package files, skipping local builds.
func (p *Pipeline) FindPackages(ctx context.Context, root string) ([]string, error) {
	var pkgs []string
	if err := p.walk(ctx, root, &pkgs); err != nil {
		return nil, err
	}
	slices.Sort(pkgs)
	return pkgs, nil
}

func (p *Pipeline) walk(ctx context.Context, dir string, pkgs *[]string) error {
	entries, err := p.fs.ReadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("read %q: %w", dir, err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := p.walk(ctx, path, pkgs); err != nil {
				return err
			}
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, packageExt) && !strings.HasSuffix(name, localPackage) {
			*pkgs = append(*pkgs, path)
		}
	}
	return nil
}

// Push uploads each package; failures are recorded and the loop continues.
func (p *Pipeline) Push(ctx context.Context, pkgs []string, opts PushOptions) PushReport {
	report := PushReport{Failed: make(map[string]error)}
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			report.Failed[pkg] = err
			continue
		}

		args := []string{"nuget", "push", pkg}
		if opts.SkipDuplicate {
			args = append(args, "--skip-duplicate")
		}
		args = append(args, "-k", opts.APIKey, "-s", opts.Source)

		p.log.Info().Str("package", pkg).Msg("pushing")
		out, err := p.runner.Run(ctx, core.Command{Name: "dotnet", Args: args, Dir: p.dir})
		if err != nil {
			p.log.Warn().Err(err).Str("package", pkg).Str("stderr", strings.TrimSpace(out.Stderr)).Msg("push failed")
			report.Failed[pkg] = err
			continue
		}
		report.Pushed = append(report.Pushed, pkg)
	}
	return report
}

// Deploy runs Build, Test, FindPackages and Push in order. Build and test
// failures stop the run; the report is returned even when some pushes fail.
func (p *Pipeline) Deploy(ctx context.Context, bc BuildContext, root string, opts PushOptions, skipTests bool) (PushReport, error) {
	if opts.APIKey == "" {
		return PushReport{}, ErrMissingAPIKey
	}
	if _, err := p.Build(ctx, bc); err != nil {
		return PushReport{}, err
	}
	if !skipTests {
		if _, err := p.Test(ctx, bc); err != nil {
			return PushReport{}, err
		}
	}
	pkgs, err := p.FindPackages(ctx, root)
	if err != nil {
		return PushReport{}, err
	}
	return p.Push(ctx, pkgs, opts), nil
}
