package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zenith-sql/relkit/internal/cli"
	"github.com/zenith-sql/relkit/internal/clix"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI builds the production environment and runs the command tree.
func runCLI(args []string) error {
	return cli.New(clix.NewEnv()).Run(context.Background(), args)
}
