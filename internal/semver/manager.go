package semver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/zenith-sql/relkit/internal/core"
)

// VersionManager reads and writes version marker files.
type VersionManager struct {
	fs core.FileSystem
}

// NewVersionManager creates a VersionManager over fs.
func NewVersionManager(fs core.FileSystem) *VersionManager {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &VersionManager{fs: fs}
}

// ReadRaw returns the first line of the marker at path, without the line
// terminator and without parsing it.
func (m *VersionManager) ReadRaw(ctx context.Context, path string) (string, error) {
	data, err := m.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read version file %q: %w", path, err)
	}
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return string(bytes.TrimSuffix(line, []byte("\r"))), nil
}

// Read returns the parsed version stored in the marker at path.
func (m *VersionManager) Read(ctx context.Context, path string) (SemVersion, error) {
	raw, err := m.ReadRaw(ctx, path)
	if err != nil {
		return SemVersion{}, err
	}
	v, err := ParseVersion(raw)
	if err != nil {
		return SemVersion{}, fmt.Errorf("version file %q: %w", path, err)
	}
	return v, nil
}

// Save overwrites the marker at path with the canonical form of v.
// No trailing newline is written.
func (m *VersionManager) Save(ctx context.Context, path string, v SemVersion) error {
	return m.WriteRaw(ctx, path, v.String())
}

// WriteRaw overwrites the marker at path with content as-is.
func (m *VersionManager) WriteRaw(ctx context.Context, path, content string) error {
	if err := m.fs.WriteFile(ctx, path, []byte(content), core.PermFile); err != nil {
		return fmt.Errorf("write version file %q: %w", path, err)
	}
	return nil
}
