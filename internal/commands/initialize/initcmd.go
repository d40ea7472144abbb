// Package initialize implements the "init" command, which writes a
// starter .relkit.yaml.
package initialize

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/printer"
)

// Run returns the "init" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default " + config.DefaultFile,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Directory holding the projects",
			},
			&cli.StringFlag{
				Name:  "remote",
				Usage: "Git remote that receives tags",
			},
			&cli.StringFlag{
				Name:  "tag-prefix",
				Usage: "Prefix prepended to version tags",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(ctx, cmd, env)
		},
	}
}

func runInit(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	cfg := config.Default()
	if v := cmd.String("root"); v != "" {
		cfg.Root = v
	}
	if v := cmd.String("remote"); v != "" {
		cfg.Remote = v
	}
	cfg.TagPrefix = cmd.String("tag-prefix")
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := cmd.String("config")
	if path == "" {
		path = config.DefaultFile
	}
	if err := config.Save(ctx, env.FS, cfg, path, cmd.Bool("force")); err != nil {
		return err
	}
	printer.PrintSuccess("Wrote " + path)

	// Report what the new configuration sees so a wrong root is obvious.
	svc, err := discovery.NewService(env.FS, cfg)
	if err != nil {
		return err
	}
	projects, err := svc.Versioned(ctx)
	if err != nil {
		env.Log.Debug().Err(err).Msg("discovery after init")
		printer.PrintWarning(fmt.Sprintf("No project directory at %q yet", cfg.Root))
		return nil
	}
	printer.PrintInfo(fmt.Sprintf("Found %d versioned project(s) under %s", len(projects), cfg.Root))
	return nil
}
