// Package git wraps the git commands used to record a version change.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/zenith-sql/relkit/internal/core"
)

// Client is the version-control surface needed by the bump workflow.
// Every call is synchronous and can fail independently.
type Client interface {
	StageFiles(ctx context.Context, files ...string) error
	UnstageFiles(ctx context.Context, files ...string) error
	Commit(ctx context.Context, message string) error
	// CreateTag creates a lightweight tag, or an annotated one when message is non-empty.
	CreateTag(ctx context.Context, name, message string) error
	TagExists(ctx context.Context, name string) (bool, error)
	PushTags(ctx context.Context, remote string) error
}

// CLI implements Client by running the git binary.
type CLI struct {
	runner core.CommandRunner
	dir    string
}

// NewCLI creates a git client running in dir (empty for the working directory).
func NewCLI(runner core.CommandRunner, dir string) *CLI {
	if runner == nil {
		runner = core.NewOSCommandRunner()
	}
	return &CLI{runner: runner, dir: dir}
}

var _ Client = (*CLI)(nil)

func (g *CLI) StageFiles(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := g.run(ctx, "git add", args...)
	return err
}

func (g *CLI) UnstageFiles(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"reset", "-q", "--"}, files...)
	_, err := g.run(ctx, "git reset", args...)
	return err
}

func (g *CLI) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "git commit", "commit", "-m", message)
	return err
}

func (g *CLI) CreateTag(ctx context.Context, name, message string) error {
	if message != "" {
		_, err := g.run(ctx, "git tag (annotated)", "tag", "-a", name, "-m", message)
		return err
	}
	_, err := g.run(ctx, "git tag (lightweight)", "tag", name)
	return err
}

func (g *CLI) TagExists(ctx context.Context, name string) (bool, error) {
	out, err := g.run(ctx, "git tag list", "tag", "-l", name)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out.Stdout) == name, nil
}

func (g *CLI) PushTags(ctx context.Context, remote string) error {
	_, err := g.run(ctx, "git push --tags", "push", "--tags", remote)
	return err
}

// run executes git and folds trimmed stderr into the returned error.
func (g *CLI) run(ctx context.Context, op string, args ...string) (core.Output, error) {
	out, err := g.runner.Run(ctx, core.Command{Name: "git", Args: args, Dir: g.dir})
	if err != nil {
		if msg := strings.TrimSpace(out.Stderr); msg != "" {
			return out, fmt.Errorf("%s: %s: %w", op, msg, err)
		}
		return out, fmt.Errorf("%s failed: %w", op, err)
	}
	return out, nil
}
