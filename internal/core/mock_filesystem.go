package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Directories are
// implied by the files stored beneath them and can also be added with SetDir.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// ReadErr, WriteErr, StatErr and ReadDirErr force the matching call to fail.
	ReadErr    error
	WriteErr   error
	StatErr    error
	ReadDirErr error

	// Writes counts successful WriteFile calls.
	Writes int
}

// NewMockFileSystem returns an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

var _ FileSystem = (*MockFileSystem)(nil)

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// SetFile stores data at p and registers its parent directories.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = normalize(p)
	m.files[p] = slices.Clone(data)
	m.addParents(p)
}

// SetDir registers an empty directory.
func (m *MockFileSystem) SetDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = normalize(p)
	m.dirs[p] = true
	m.addParents(p)
}

// File returns the stored content of p.
func (m *MockFileSystem) File(p string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[normalize(p)]
	return data, ok
}

func (m *MockFileSystem) addParents(p string) {
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		m.dirs[dir] = true
		if dir == "." || dir == "/" {
			return
		}
	}
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[normalize(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, p string, data []byte, _ os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p = normalize(p)
	if !m.dirs[path.Dir(p)] {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	m.files[p] = slices.Clone(data)
	m.Writes++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = normalize(p)
	if data, ok := m.files[p]; ok {
		return mockInfo{name: path.Base(p), size: int64(len(data))}, nil
	}
	if m.dirs[p] {
		return mockInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p = normalize(p)
	if !m.dirs[p] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	seen := make(map[string]fs.DirEntry)
	for f, data := range m.files {
		if name, ok := childOf(p, f); ok {
			seen[name] = fs.FileInfoToDirEntry(mockInfo{name: name, size: int64(len(data))})
		}
	}
	for d := range m.dirs {
		if name, ok := childOf(p, d); ok {
			seen[name] = fs.FileInfoToDirEntry(mockInfo{name: name, dir: true})
		}
	}

	entries := make([]fs.DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

// childOf reports whether p is an immediate child of dir and returns its base name.
func childOf(dir, p string) (string, bool) {
	if p == dir || path.Dir(p) != dir {
		return "", false
	}
	return path.Base(p), true
}

type mockInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockInfo) Name() string { return i.name }
func (i mockInfo) Size() int64  { return i.size }
func (i mockInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | PermDir
	}
	return PermFile
}
func (i mockInfo) ModTime() time.Time { return time.Time{} }
func (i mockInfo) IsDir() bool        { return i.dir }
func (i mockInfo) Sys() any           { return nil }
