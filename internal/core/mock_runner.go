package core

import (
	"context"
	"fmt"
	"sync"
)

// MockResponse is the scripted result for a command matched by MockCommandRunner.
type MockResponse struct {
	Output Output
	Err    error
}

// MockCommandRunner records every command and answers from a script.
// Responses are keyed by Command.String(); unmatched commands succeed
// with empty output unless RunFn is set.
type MockCommandRunner struct {
	mu        sync.Mutex
	Calls     []Command
	Responses map[string]MockResponse
	RunFn     func(ctx context.Context, cmd Command) (Output, error)
}

// NewMockCommandRunner returns a runner with no scripted responses.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{Responses: make(map[string]MockResponse)}
}

var _ CommandRunner = (*MockCommandRunner)(nil)

// On scripts the response for the command whose rendered form is line.
func (m *MockCommandRunner) On(line string, out Output, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[line] = MockResponse{Output: out, Err: err}
}

func (m *MockCommandRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	m.mu.Lock()
	m.Calls = append(m.Calls, cmd)
	resp, ok := m.Responses[cmd.String()]
	fn := m.RunFn
	m.mu.Unlock()

	if ok {
		if resp.Err != nil && resp.Output.ExitCode == 0 {
			resp.Output.ExitCode = 1
		}
		if resp.Err != nil {
			return resp.Output, fmt.Errorf("%s: %w", cmd.Name, resp.Err)
		}
		return resp.Output, nil
	}
	if fn != nil {
		return fn(ctx, cmd)
	}
	return Output{}, nil
}

// Lines returns the rendered form of every recorded call.
func (m *MockCommandRunner) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = c.String()
	}
	return lines
}
