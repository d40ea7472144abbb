package core

import (
	"context"
	"io/fs"
	"os"
)

// File permission constants.
const (
	// PermFile is used for marker and config files.
	PermFile os.FileMode = 0o644

	// PermDir is used for directories created by tests and fixtures.
	PermDir os.FileMode = 0o755
)

// FileSystem abstracts the filesystem calls made by discovery, the version
// manager and the release pipeline.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
}

// OSFileSystem implements FileSystem on top of package os.
type OSFileSystem struct{}

// NewOSFileSystem returns the production filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

var _ FileSystem = (*OSFileSystem)(nil)

func (OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (OSFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (OSFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(path)
}
