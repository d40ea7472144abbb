// Package clix holds the collaborators shared by every command.
package clix

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/logging"
	"github.com/zenith-sql/relkit/internal/tui"
)

// Env is built once per invocation; Config is filled by the root command's
// Before hook after flags are parsed.
type Env struct {
	Config   *config.Config
	FS       core.FileSystem
	Runner   core.CommandRunner
	Log      zerolog.Logger
	Prompter tui.Prompter

	// Dir is where git and the toolchain run; empty means the working directory.
	Dir string

	Interactive func() bool
	Getenv      func(string) string
}

// NewEnv returns the production environment.
func NewEnv() *Env {
	return &Env{
		Config:      config.Default(),
		FS:          core.NewOSFileSystem(),
		Runner:      core.NewOSCommandRunner(),
		Log:         logging.New(os.Stderr, false, false),
		Prompter:    tui.NewPrompter(),
		Interactive: tui.IsInteractive,
		Getenv:      os.Getenv,
	}
}
