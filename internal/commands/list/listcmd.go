// Package list implements the "list" command, which shows the projects
// discovered under the project root and their versions.
package list

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zenith-sql/relkit/internal/clix"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/printer"
)

// Run returns the "list" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List discovered projects and their versions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, table, json, yaml, toml",
				Value:   string(FormatText),
			},
			&cli.BoolFlag{
				Name:  "versioned",
				Usage: "Only show projects with a version marker",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := ParseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			svc, err := discovery.NewService(env.FS, env.Config)
			if err != nil {
				return err
			}
			projects, err := svc.Discover(ctx)
			if cmd.Bool("versioned") {
				projects, err = svc.Versioned(ctx)
			}
			if err != nil {
				return err
			}

			out, err := NewFormatter(format).Format(svc.Root(), projects)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			return printer.Print(out)
		},
	}
}
