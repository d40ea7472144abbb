// Package releasecmd implements the "build", "test" and "deploy" commands.
package releasecmd

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v3"
	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/printer"
	"github.com/zenith-sql/relkit/internal/release"
)

// BuildCmd returns the "build" command.
func BuildCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the solution with project versions applied",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, bc, err := prepare(ctx, env)
			if err != nil {
				return err
			}
			var out core.Output
			err = withSpinner(ctx, env, "Building ("+bc.Configuration+")...", func(ctx context.Context) error {
				out, err = p.Build(ctx, bc)
				return err
			})
			echo(out)
			if err != nil {
				return err
			}
			printer.PrintSuccess("Build succeeded")
			return nil
		},
	}
}

// TestCmd returns the "test" command.
func TestCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Run the solution's tests with project versions applied",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, bc, err := prepare(ctx, env)
			if err != nil {
				return err
			}
			var out core.Output
			err = withSpinner(ctx, env, "Running tests...", func(ctx context.Context) error {
				out, err = p.Test(ctx, bc)
				return err
			})
			echo(out)
			if err != nil {
				return err
			}
			printer.PrintSuccess("Tests passed")
			return nil
		},
	}
}

// DeployCmd returns the "deploy" command.
func DeployCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "Build, test and push every package to the registry",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-tests",
				Usage: "Skip the test step",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := env.Config
			opts := release.PushOptions{
				Source:        cfg.Registry.Source,
				APIKey:        env.Getenv(cfg.Registry.APIKeyEnv),
				SkipDuplicate: cfg.SkipDuplicates(),
			}
			if opts.APIKey == "" {
				return fmt.Errorf("%w: set %s", release.ErrMissingAPIKey, cfg.Registry.APIKeyEnv)
			}

			p, bc, err := prepare(ctx, env)
			if err != nil {
				return err
			}

			var report release.PushReport
			err = withSpinner(ctx, env, "Deploying packages...", func(ctx context.Context) error {
				report, err = p.Deploy(ctx, bc, cfg.Root, opts, cmd.Bool("skip-tests"))
				return err
			})
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
}

// prepare discovers versioned projects and builds the pipeline inputs.
func prepare(ctx context.Context, env *clix.Env) (*release.Pipeline, release.BuildContext, error) {
	svc, err := discovery.NewService(env.FS, env.Config)
	if err != nil {
		return nil, release.BuildContext{}, err
	}
	projects, err := svc.Versioned(ctx)
	if err != nil {
		return nil, release.BuildContext{}, err
	}

	bc := release.BuildContext{
		Configuration: env.Config.Build.Configuration,
		Versions:      release.PackageVersions(projects),
	}
	for _, k := range slices.Sorted(maps.Keys(bc.Versions)) {
		env.Log.Debug().Str("key", k).Str("version", bc.Versions[k]).Msg("package version")
	}
	return release.NewPipeline(env.Runner, env.FS, env.Dir, env.Log), bc, nil
}

// withSpinner runs fn behind a spinner on a terminal and directly otherwise.
func withSpinner(ctx context.Context, env *clix.Env, title string, fn func(context.Context) error) error {
	if env.Interactive == nil || !env.Interactive() {
		return fn(ctx)
	}
	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(fn).
		Run()
}

func echo(out core.Output) {
	if out.Stdout != "" {
		_ = printer.Print(out.Stdout)
	}
}

func printReport(report release.PushReport) error {
	for _, pkg := range report.Pushed {
		printer.PrintSuccess("Pushed " + filepath.Base(pkg))
	}
	failed := slices.Sorted(maps.Keys(report.Failed))
	for _, pkg := range failed {
		printer.PrintError(fmt.Sprintf("Failed %s: %v", filepath.Base(pkg), report.Failed[pkg]))
	}
	if len(report.Pushed) == 0 && len(failed) == 0 {
		printer.PrintWarning("No packages found")
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d packages failed to push", len(failed), len(failed)+len(report.Pushed))
	}
	return nil
}
