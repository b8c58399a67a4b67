// Package tui provides terminal-capability detection and the huh theme
// used by interactive prompts.
package tui

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ciEnvVars are environment variables that indicate a CI/CD environment
// where interactive prompts must be skipped.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// IsInteractive reports whether the current environment supports
// interactive prompts: stdout must be a terminal and no CI environment
// variable may be set.
func IsInteractive() bool {
	if !IsTTY() {
		return false
	}
	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return false
		}
	}
	return true
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Theme returns the huh theme for reqwise prompts.
func Theme() *huh.Theme {
	return huh.ThemeBase16()
}
