// Package cli assembles the relkit command tree.
package cli

import (
	"context"
	"os"

	urfavecli "github.com/urfave/cli/v3"
	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/commands/bump"
	"github.com/zenith-sql/relkit/internal/commands/initialize"
	"github.com/zenith-sql/relkit/internal/commands/list"
	"github.com/zenith-sql/relkit/internal/commands/releasecmd"
	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/logging"
	"github.com/zenith-sql/relkit/internal/printer"
	"github.com/zenith-sql/relkit/internal/tui"
	"github.com/zenith-sql/relkit/internal/version"
)

// New builds the root command. Configuration is loaded in the Before hook
// so --config is honoured by every subcommand.
func New(env *clix.Env) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "relkit",
		Version:               version.GetVersion(),
		Usage:                 "Version and release tool for multi-project package repositories",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the configuration file",
				DefaultText: config.DefaultFile,
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			noColor := cmd.Bool("no-color")
			printer.SetNoColor(noColor)
			env.Log = logging.New(os.Stderr, cmd.Bool("verbose"), noColor)

			// init must run before a configuration exists or when the current one is broken.
			if cmd.Args().First() == "init" {
				return ctx, nil
			}

			cfg, err := config.LoadFn(cmd.String("config"))
			if err != nil {
				return ctx, err
			}
			env.Config = cfg
			tui.SetTheme(cfg.Theme)
			env.Log.Debug().Str("root", cfg.Root).Str("marker", cfg.Marker).Str("exclude", cfg.Exclude).Msg("configuration loaded")
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(env),
			list.Run(env),
			bump.Run(env),
			releasecmd.BuildCmd(env),
			releasecmd.TestCmd(env),
			releasecmd.DeployCmd(env),
		},
	}
}
