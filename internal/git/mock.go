package git

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// MockClient is an in-memory Client that records calls and keeps a
// minimal model of commits and tags.
type MockClient struct {
	Staged  []string
	Commits []string
	// Tags maps tag name to the index of the commit it points at.
	Tags   map[string]int
	Pushes []string
	Calls  []string

	StageErr  error
	CommitErr error
	TagErr    error
	ExistsErr error
	PushErr   error
}

// NewMockClient returns an empty repository model.
func NewMockClient() *MockClient {
	return &MockClient{Tags: make(map[string]int)}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) StageFiles(_ context.Context, files ...string) error {
	m.Calls = append(m.Calls, "add "+strings.Join(files, " "))
	if m.StageErr != nil {
		return m.StageErr
	}
	m.Staged = append(m.Staged, files...)
	return nil
}

func (m *MockClient) UnstageFiles(_ context.Context, files ...string) error {
	m.Calls = append(m.Calls, "reset "+strings.Join(files, " "))
	m.Staged = slices.DeleteFunc(m.Staged, func(f string) bool { return slices.Contains(files, f) })
	return nil
}

func (m *MockClient) Commit(_ context.Context, message string) error {
	m.Calls = append(m.Calls, "commit "+message)
	if m.CommitErr != nil {
		return m.CommitErr
	}
	if len(m.Staged) == 0 {
		return fmt.Errorf("nothing to commit")
	}
	m.Commits = append(m.Commits, message)
	m.Staged = nil
	return nil
}

func (m *MockClient) CreateTag(_ context.Context, name, _ string) error {
	m.Calls = append(m.Calls, "tag "+name)
	if m.TagErr != nil {
		return m.TagErr
	}
	if _, ok := m.Tags[name]; ok {
		return fmt.Errorf("tag %s already exists", name)
	}
	if len(m.Commits) == 0 {
		return fmt.Errorf("no commit to tag")
	}
	m.Tags[name] = len(m.Commits) - 1
	return nil
}

func (m *MockClient) TagExists(_ context.Context, name string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.Tags[name]
	return ok, nil
}

func (m *MockClient) PushTags(_ context.Context, remote string) error {
	m.Calls = append(m.Calls, "push --tags "+remote)
	if m.PushErr != nil {
		return m.PushErr
	}
	m.Pushes = append(m.Pushes, remote)
	return nil
}

// HeadTagged reports whether tag points at the most recent commit.
func (m *MockClient) HeadTagged(tag string) bool {
	idx, ok := m.Tags[tag]
	return ok && idx == len(m.Commits)-1
}

// Mutated reports whether any commit, tag or push happened.
func (m *MockClient) Mutated() bool {
	return len(m.Commits) > 0 || len(m.Tags) > 0 || len(m.Pushes) > 0 || slices.ContainsFunc(m.Calls, func(c string) bool {
		return strings.HasPrefix(c, "add ")
	})
}
