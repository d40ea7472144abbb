package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string

	// Env holds KEY=VALUE pairs added to the child's inherited environment.
	// The parent process environment is never modified.
	Env []string
}

// String renders the argument vector for logs and error messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output is the captured result of a finished command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs external tools (git, dotnet) and captures their output.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// OSCommandRunner implements CommandRunner using os/exec.
type OSCommandRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSCommandRunner creates a runner backed by exec.CommandContext.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{execCommand: exec.CommandContext}
}

var _ CommandRunner = (*OSCommandRunner)(nil)

// Run executes cmd and waits for it. A non-zero exit is returned as an
// error wrapping *exec.ExitError, with Output still populated.
func (r *OSCommandRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	c := r.execCommand(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.ExitCode = -1
		}
		return out, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return out, nil
}
