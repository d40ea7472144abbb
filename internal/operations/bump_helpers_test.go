package operations

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/zenith-sql/relkit/internal/config"
	"github.com/zenith-sql/relkit/internal/core"
	"github.com/zenith-sql/relkit/internal/discovery"
	"github.com/zenith-sql/relkit/internal/git"
)

var corePath = filepath.Join("src", "core", ".version")

type fixture struct {
	fs  *core.MockFileSystem
	git *git.MockClient
	mgr *Manager
}

// newFixture builds src/core with marker content and a harness project
// that discovery must skip.
func newFixture(t *testing.T, marker string, opts Options) *fixture {
	t.Helper()
	fs := core.NewMockFileSystem()
	fs.SetFile(corePath, []byte(marker))
	fs.SetFile(filepath.Join("src", "core.tests", ".version"), []byte("0.0.1"))
	fs.SetDir(filepath.Join("src", "docs"))

	svc, err := discovery.NewService(fs, config.Default())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	client := git.NewMockClient()
	return &fixture{
		fs:  fs,
		git: client,
		mgr: NewManager(fs, svc, client, opts, zerolog.Nop()),
	}
}

func (f *fixture) marker(t *testing.T) string {
	t.Helper()
	data, ok := f.fs.File(corePath)
	if !ok {
		t.Fatal("marker file disappeared")
	}
	return string(data)
}

func defaultOptions() Options {
	return Options{Remote: "origin", RequireIncrease: true}
}
