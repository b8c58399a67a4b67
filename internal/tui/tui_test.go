package tui

import (
	"testing"
)

// Under `go test` stdout is not a TTY, so prompts must be disabled.
func TestIsInteractive_FalseWithoutTTY(t *testing.T) {
	if IsInteractive() {
		t.Error("IsInteractive() = true in a non-TTY test environment")
	}
}

func TestIsInteractive_FalseInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if IsInteractive() {
		t.Error("IsInteractive() = true with CI env set")
	}
}

func TestTheme_NotNil(t *testing.T) {
	if Theme() == nil {
		t.Error("Theme() returned nil")
	}
}
