package prompt

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/specifier"
)

// ScriptedPrompter replays canned answers, used by tests and available to
// non-interactive callers that already know their responses.
type ScriptedPrompter struct {
	// Kinds maps package name to the kind to select.
	Kinds map[string]specifier.Kind

	// Versions holds version answers consumed in order per package,
	// letting tests exercise the retry loop with bad input first.
	Versions map[string][]string

	// VersionCalls counts AskVersion invocations per package.
	VersionCalls map[string]int
}

// NewScriptedPrompter creates an empty scripted prompter.
func NewScriptedPrompter() *ScriptedPrompter {
	return &ScriptedPrompter{
		Kinds:        make(map[string]specifier.Kind),
		Versions:     make(map[string][]string),
		VersionCalls: make(map[string]int),
	}
}

// Script registers the kind and the sequence of version answers for pkg.
func (s *ScriptedPrompter) Script(pkg string, kind specifier.Kind, versions ...string) {
	s.Kinds[pkg] = kind
	s.Versions[pkg] = versions
}

func (s *ScriptedPrompter) SelectKind(_ context.Context, pkg string) (specifier.Kind, error) {
	kind, ok := s.Kinds[pkg]
	if !ok {
		return "", fmt.Errorf("no scripted kind for package %q", pkg)
	}
	return kind, nil
}

func (s *ScriptedPrompter) AskVersion(_ context.Context, _ specifier.Kind, pkg string) (string, error) {
	i := s.VersionCalls[pkg]
	answers := s.Versions[pkg]
	if i >= len(answers) {
		return "", fmt.Errorf("scripted answers for %q exhausted after %d prompts", pkg, i)
	}
	s.VersionCalls[pkg] = i + 1
	return answers[i], nil
}
