// Package operations implements the version bump workflow: resolve a
// project, compute its next version, write the marker and record the
// change as a commit plus tag pushed to the remote.
package operations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/git"
	"github.com/zenith-sql/relkit/internal/semver"
)

// OperationKind selects how the new version is computed.
type OperationKind string

const (
	// IncrementPatch bumps the patch component and clears pre-release and build metadata.
	IncrementPatch OperationKind = "increment"
	// Specify replaces the version with an explicit value.
	Specify OperationKind = "specify"
)

// Operation is the update requested for a project.
type Operation struct {
	Kind OperationKind
	// Value is the explicit version for Specify.
	Value string
}

// ParseOperation maps the interactive choice letters "i" and "s" to an Operation.
func ParseOperation(choice, value string) (Operation, error) {
	switch choice {
	case "i":
		return Operation{Kind: IncrementPatch}, nil
	case "s":
		return Operation{Kind: Specify, Value: value}, nil
	default:
		return Operation{}, fmt.Errorf("%w: %q (expected i or s)", ErrUnknownOperation, choice)
	}
}

// Options tune how a change is recorded.
type Options struct {
	Remote          string
	TagPrefix       string
	Annotate        bool
	RequireIncrease bool
	NoPush          bool
	DryRun          bool
}

// Plan is a validated update that has not been applied.
type Plan struct {
	Project discovery.Project
	Old     string
	New     semver.SemVersion
	Tag     string

	original []byte
}

// Result records what Update did.
type Result struct {
	Plan

	Persisted bool
	Committed bool
	Tagged    bool
	Pushed    bool
	DryRun    bool
}

// Manager runs the bump workflow.
type Manager struct {
	fs        core.FileSystem
	discovery *discovery.Service
	versions  *semver.VersionManager
	git       git.Client
	opts      Options
	log       zerolog.Logger
}

// NewManager wires a Manager. A zero-value logger discards output.
func NewManager(fsys core.FileSystem, svc *discovery.Service, client git.Client, opts Options, log zerolog.Logger) *Manager {
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	return &Manager{
		fs:        fsys,
		discovery: svc,
		versions:  semver.NewVersionManager(fsys),
		git:       client,
		opts:      opts,
		log:       log,
	}
}

// Resolve maps id to a versioned project without reading further.
func (m *Manager) Resolve(ctx context.Context, id string) (discovery.Project, error) {
	p, err := m.discovery.Resolve(ctx, id)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, discovery.ErrProjectNotFound):
		return p, fail(KindUnknownProject, id, err)
	case errors.Is(err, discovery.ErrNotVersioned):
		return p, fail(KindNotVersioned, p.Name, err)
	default:
		// The project root itself could not be listed or a marker could not be read.
		return p, fail(KindDiscovery, id, err)
	}
}

// Plan resolves the project, reads its marker and computes the new
// version. It has no side effects.
func (m *Manager) Plan(ctx context.Context, id string, op Operation) (*Plan, error) {
	project, err := m.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	original, err := m.fs.ReadFile(ctx, project.MarkerPath)
	if err != nil {
		return nil, readFailure(project.Name, err)
	}
	old, err := m.versions.ReadRaw(ctx, project.MarkerPath)
	if err != nil {
		return nil, readFailure(project.Name, err)
	}

	next, err := m.next(project.Name, old, op)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Project:  project,
		Old:      old,
		New:      next,
		Tag:      m.opts.TagPrefix + next.String(),
		original: original,
	}

	exists, err := m.git.TagExists(ctx, plan.Tag)
	if err != nil {
		return nil, fail(KindVersionControl, project.Name, fmt.Errorf("check tag %s: %w", plan.Tag, err))
	}
	if exists {
		return nil, fail(KindTagExists, project.Name, fmt.Errorf("%w: %s", ErrTagExists, plan.Tag))
	}

	m.log.Debug().Str("project", project.Name).Str("from", old).Str("to", next.String()).Msg("planned version update")
	return plan, nil
}

func readFailure(project string, err error) *UpdateError {
	if errors.Is(err, fs.ErrNotExist) {
		return fail(KindNotVersioned, project, err)
	}
	return fail(KindPersist, project, err)
}

func (m *Manager) next(project, old string, op Operation) (semver.SemVersion, error) {
	switch op.Kind {
	case IncrementPatch:
		cur, err := semver.ParseVersion(old)
		if err != nil {
			return semver.SemVersion{}, fail(KindMalformedVersion, project, fmt.Errorf("current version: %w", err))
		}
		next, err := semver.BumpPatch(cur)
		if err != nil {
			return semver.SemVersion{}, fail(KindMalformedVersion, project, err)
		}
		return next, nil

	case Specify:
		next, err := semver.ParseVersion(op.Value)
		if err != nil {
			return semver.SemVersion{}, fail(KindMalformedVersion, project, err)
		}
		if !m.opts.RequireIncrease {
			return next, nil
		}
		cur, err := semver.ParseVersion(old)
		if err != nil {
			// An unreadable marker can only be repaired by specifying a version.
			m.log.Warn().Str("project", project).Str("current", old).Msg("current version is malformed; skipping ordering check")
			return next, nil
		}
		if !next.GreaterThan(cur) {
			return semver.SemVersion{}, fail(KindNotGreater, project, fmt.Errorf("%w: %s -> %s", ErrNotGreater, cur, next))
		}
		return next, nil

	default:
		return semver.SemVersion{}, fail(KindMalformedVersion, project, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Kind))
	}
}

// Update plans and applies op to the project named by id.
//
// Validation failures return before anything is written. If staging or
// committing fails the marker is restored. Tag and push failures leave the
// commit in place and are reported as KindVersionControl with the partial
// Result.
func (m *Manager) Update(ctx context.Context, id string, op Operation) (*Result, error) {
	plan, err := m.Plan(ctx, id, op)
	if err != nil {
		return nil, err
	}
	return m.Apply(ctx, plan)
}

// Apply persists and records a plan produced by Plan.
func (m *Manager) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	res := &Result{Plan: *plan, DryRun: m.opts.DryRun}
	name := plan.Project.Name
	if m.opts.DryRun {
		return res, nil
	}

	if err := m.versions.Save(ctx, plan.Project.MarkerPath, plan.New); err != nil {
		return res, fail(KindPersist, name, err)
	}
	res.Persisted = true
	m.log.Debug().Str("path", plan.Project.MarkerPath).Msg("wrote version marker")

	version := plan.New.String()
	if err := m.git.StageFiles(ctx, plan.Project.MarkerPath); err != nil {
		return m.rollback(ctx, res, fail(KindVersionControl, name, err))
	}
	if err := m.git.Commit(ctx, version); err != nil {
		return m.rollback(ctx, res, fail(KindVersionControl, name, err))
	}
	res.Committed = true

	message := ""
	if m.opts.Annotate {
		message = "Release " + plan.Tag
	}
	if err := m.git.CreateTag(ctx, plan.Tag, message); err != nil {
		return res, fail(KindVersionControl, name, fmt.Errorf("commit %s created but tagging failed: %w", version, err))
	}
	res.Tagged = true

	if m.opts.NoPush {
		return res, nil
	}
	if err := m.git.PushTags(ctx, m.opts.Remote); err != nil {
		return res, fail(KindVersionControl, name, fmt.Errorf("tag %s created but push to %s failed: %w", plan.Tag, m.opts.Remote, err))
	}
	res.Pushed = true
	return res, nil
}

// rollback restores the marker after a failed stage or commit.
func (m *Manager) rollback(ctx context.Context, res *Result, cause *UpdateError) (*Result, error) {
	path := res.Project.MarkerPath
	if err := m.git.UnstageFiles(ctx, path); err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("unstage failed")
	}
	if err := m.fs.WriteFile(ctx, path, res.original, core.PermFile); err != nil {
		cause.Err = errors.Join(cause.Err, fmt.Errorf("restore %s: %w", path, err))
		return res, cause
	}
	res.Persisted = false
	m.log.Debug().Str("path", path).Msg("restored version marker")
	return res, cause
}
