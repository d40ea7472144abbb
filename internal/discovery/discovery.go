package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/semver"
)

// Service provides project discovery over a FileSystem.
type Service struct {
	fs      core.FileSystem
	root    string
	marker  string
	exclude *regexp.Regexp
	vm      *semver.VersionManager
}

// NewService creates a discovery Service from the root, marker and exclude
// settings of cfg. A nil cfg uses config.Default().
func NewService(fsys core.FileSystem, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	exclude, err := cfg.ExcludePattern()
	if err != nil {
		return nil, fmt.Errorf("compile exclude pattern %q: %w", cfg.Exclude, err)
	}
	return &Service{
		fs:      fsys,
		root:    cfg.Root,
		marker:  cfg.Marker,
		exclude: exclude,
		vm:      semver.NewVersionManager(fsys),
	}, nil
}

// Root returns the directory projects are discovered in.
func (s *Service) Root() string {
	return s.root
}

// Discover lists the immediate subdirectories of the root, skipping
// excluded names. Results are sorted by name.
func (s *Service) Discover(ctx context.Context) ([]Project, error) {
	entries, err := s.fs.ReadDir(ctx, s.root)
	if err != nil {
		return nil, fmt.Errorf("read project root %q: %w", s.root, err)
	}

	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || s.exclude.MatchString(e.Name()) {
			continue
		}
		p, err := s.load(ctx, e.Name())
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	slices.SortFunc(projects, func(a, b Project) int {
		return strings.Compare(a.Name, b.Name)
	})
	return projects, nil
}

// Versioned is Discover restricted to projects that have a marker.
func (s *Service) Versioned(ctx context.Context) ([]Project, error) {
	all, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}
	versioned := all[:0]
	for _, p := range all {
		if p.Versioned {
			versioned = append(versioned, p)
		}
	}
	return versioned, nil
}

// Resolve maps an operator-supplied identifier to a discovered project.
// A leading root segment ("src/core", "./src/core/") is stripped first.
// It returns ErrProjectNotFound for unknown names and ErrNotVersioned when
// the project exists without a marker; in the latter case the project is
// returned as well.
func (s *Service) Resolve(ctx context.Context, id string) (Project, error) {
	name := s.Normalize(id)

	projects, err := s.Discover(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Name != name {
			continue
		}
		if !p.Versioned {
			return p, fmt.Errorf("%w: %s (expected %s)", ErrNotVersioned, p.Name, p.MarkerPath)
		}
		return p, nil
	}
	return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// Normalize strips the root prefix and surrounding separators from id.
func (s *Service) Normalize(id string) string {
	clean := path.Clean(filepath.ToSlash(strings.TrimSpace(id)))
	root := path.Clean(filepath.ToSlash(s.root))

	for _, prefix := range []string{root + "/", path.Base(root) + "/"} {
		if rest, ok := strings.CutPrefix(clean, prefix); ok {
			clean = rest
			break
		}
	}
	return strings.Trim(clean, "/")
}

func (s *Service) load(ctx context.Context, name string) (Project, error) {
	dir := filepath.Join(s.root, name)
	p := Project{
		Name:       name,
		Dir:        dir,
		MarkerPath: filepath.Join(dir, s.marker),
	}

	info, err := s.fs.Stat(ctx, p.MarkerPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return p, nil
	case err != nil:
		return Project{}, fmt.Errorf("stat %q: %w", p.MarkerPath, err)
	case info.IsDir():
		return p, nil
	}

	raw, err := s.vm.ReadRaw(ctx, p.MarkerPath)
	if err != nil {
		return Project{}, err
	}
	p.Versioned = true
	p.Version = strings.TrimSpace(raw)
	return p, nil
}
