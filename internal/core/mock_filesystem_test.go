package core

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestMockFileSystem_ReadWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMockFileSystem()
	m.SetFile("src/core/.version", []byte("1.0.0"))

	data, err := m.ReadFile(ctx, "./src/core/.version")
	if err != nil || string(data) != "1.0.0" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}

	if err := m.WriteFile(ctx, "src/core/.version", []byte("1.0.1"), PermFile); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got, _ := m.File("src/core/.version"); string(got) != "1.0.1" {
		t.Errorf("File = %q", got)
	}
	if m.Writes != 1 {
		t.Errorf("Writes = %d, want 1", m.Writes)
	}

	err = m.WriteFile(ctx, "missing/dir/.version", []byte("x"), PermFile)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("write into missing dir: err = %v", err)
	}
	if _, err := m.ReadFile(ctx, "nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("read missing: err = %v", err)
	}
}

func TestMockFileSystem_StatAndReadDir(t *testing.T) {
	ctx := context.Background()
	m := NewMockFileSystem()
	m.SetFile("src/b/.version", []byte("1.0.0"))
	m.SetDir("src/a")
	m.SetFile("src/README.md", []byte("readme"))

	info, err := m.Stat(ctx, "src/a")
	if err != nil || !info.IsDir() {
		t.Fatalf("Stat(dir) = %v, %v", info, err)
	}
	info, err = m.Stat(ctx, "src/b/.version")
	if err != nil || info.IsDir() || info.Size() != 5 {
		t.Fatalf("Stat(file) = %v, %v", info, err)
	}

	entries, err := m.ReadDir(ctx, "src")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	want := []string{"README.md", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("ReadDir = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReadDir[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMockFileSystem_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	m := NewMockFileSystem()
	m.SetFile("f", []byte("x"))
	m.ReadErr, m.WriteErr, m.StatErr, m.ReadDirErr = boom, boom, boom, boom

	if _, err := m.ReadFile(ctx, "f"); !errors.Is(err, boom) {
		t.Errorf("ReadFile err = %v", err)
	}
	if err := m.WriteFile(ctx, "f", nil, PermFile); !errors.Is(err, boom) {
		t.Errorf("WriteFile err = %v", err)
	}
	if _, err := m.Stat(ctx, "f"); !errors.Is(err, boom) {
		t.Errorf("Stat err = %v", err)
	}
	if _, err := m.ReadDir(ctx, "."); !errors.Is(err, boom) {
		t.Errorf("ReadDir err = %v", err)
	}
}

func TestOSFileSystem_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := NewOSFileSystem()
	dir := t.TempDir()

	if _, err := fsys.ReadDir(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadDir err = %v", err)
	}
	if err := fsys.WriteFile(ctx, dir+"/x", []byte("x"), PermFile); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteFile err = %v", err)
	}
}
