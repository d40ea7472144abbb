package bump

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/git"
	"github.com/zenith-sql/relkit/internal/operations"
	"github.com/zenith-sql/relkit/internal/printer"
	"github.com/zenith-sql/relkit/internal/semver"
	"github.com/zenith-sql/relkit/internal/tui"
)

var (
	// ErrNoOperation is returned when no operation flag is given and prompting is impossible.
	ErrNoOperation = errors.New("no operation given: pass --increment or --set <version>")

	// ErrMissingProject is returned when the project argument is absent.
	ErrMissingProject = errors.New("missing project argument")

	errConflictingFlags = errors.New("--increment and --set are mutually exclusive")
)

// Run returns the "bump" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump a project's version, then commit, tag and push it",
		UsageText: "relkit bump <project> [--increment | --set <version>] [--flags]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "increment",
				Aliases: []string{"i"},
				Usage:   "Increment the patch version",
			},
			&cli.StringFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "Set an explicit version",
			},
			&cli.BoolFlag{
				Name:  "allow-downgrade",
				Usage: "Accept an explicit version that is not greater than the current one",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show the new version without writing or committing",
			},
			&cli.BoolFlag{
				Name:  "no-push",
				Usage: "Commit and tag locally without pushing tags",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, cmd, env)
		},
	}
}

func runBump(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w\n\nUsage: %s", ErrMissingProject, cmd.UsageText)
	}
	if cmd.Bool("increment") && cmd.IsSet("set") {
		return errConflictingFlags
	}

	mgr, err := newManager(cmd, env)
	if err != nil {
		return err
	}

	// Unknown projects fail before any prompt is shown.
	project, err := mgr.Resolve(ctx, id)
	if err != nil {
		return err
	}

	op, err := selectOperation(cmd, env, project)
	if err != nil {
		return err
	}

	res, err := mgr.Update(ctx, id, op)
	if err != nil {
		if operations.KindOf(err).Rejected() {
			env.Log.Error().Err(err).Str("project", project.Name).Msg("version update aborted")
			printer.PrintWarning(fmt.Sprintf("No changes made to %s", project.Name))
			return nil
		}
		report(res)
		return err
	}

	report(res)
	return nil
}

func newManager(cmd *cli.Command, env *clix.Env) (*operations.Manager, error) {
	cfg := env.Config
	svc, err := discovery.NewService(env.FS, cfg)
	if err != nil {
		return nil, err
	}
	opts := operations.Options{
		Remote:          cfg.Remote,
		TagPrefix:       cfg.TagPrefix,
		Annotate:        cfg.Annotate,
		RequireIncrease: cfg.MustIncrease() && !cmd.Bool("allow-downgrade"),
		NoPush:          cmd.Bool("no-push"),
		DryRun:          cmd.Bool("dry-run"),
	}
	client := git.NewCLI(env.Runner, env.Dir)
	return operations.NewManager(env.FS, svc, client, opts, env.Log), nil
}

// selectOperation reads the operation from flags, or prompts for it.
func selectOperation(cmd *cli.Command, env *clix.Env, project discovery.Project) (operations.Operation, error) {
	switch {
	case cmd.Bool("increment"):
		return operations.Operation{Kind: operations.IncrementPatch}, nil
	case cmd.IsSet("set"):
		return operations.Operation{Kind: operations.Specify, Value: cmd.String("set")}, nil
	case !env.Interactive():
		return operations.Operation{}, ErrNoOperation
	}

	choice, err := env.Prompter.SelectOperation(project.Name, project.Version)
	if err != nil {
		return operations.Operation{}, err
	}

	value := ""
	if choice == tui.ChoiceSpecify {
		value, err = env.Prompter.InputVersion(project.Version, func(s string) error {
			_, err := semver.ParseVersion(s)
			return err
		})
		if err != nil {
			return operations.Operation{}, err
		}
	}
	return operations.ParseOperation(choice, value)
}
