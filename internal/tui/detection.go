// Package tui holds the interactive prompts and their theming.
package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are set by common CI systems; prompts are never shown when one is present.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITBUCKET_BUILD_NUMBER",
	"DRONE",
	"APPVEYOR",
	"CODEBUILD_BUILD_ID",
	"TF_BUILD",
}

// isTerminal is swapped in tests.
var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// IsInteractive reports whether both stdin and stdout are terminals and
// no CI environment is detected.
func IsInteractive() bool {
	if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: fd is a small value
		return false
	}
	return !InCI()
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
