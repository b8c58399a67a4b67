// Package prompt collects version specifiers from the user. The Prompter
// interface is the suspend/resume boundary between the validation loop and
// the terminal, so tests can inject canned responses instead of driving
// real standard input.
package prompt

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/reqwise/reqwise/internal/specifier"
	"github.com/reqwise/reqwise/internal/tui"
)

// Prompter abstracts the two interactive questions of the specifier flow.
type Prompter interface {
	// SelectKind asks which specifier shape to apply to pkg.
	SelectKind(ctx context.Context, pkg string) (specifier.Kind, error)

	// AskVersion asks for the version text for the chosen kind.
	AskVersion(ctx context.Context, kind specifier.Kind, pkg string) (string, error)
}

// HuhPrompter renders prompts with charmbracelet/huh.
type HuhPrompter struct{}

// NewPrompter creates the production Prompter.
func NewPrompter() Prompter {
	return &HuhPrompter{}
}

// SelectKind shows the seven-option specifier menu.
func (p *HuhPrompter) SelectKind(ctx context.Context, pkg string) (specifier.Kind, error) {
	kinds := specifier.Kinds()
	options := make([]huh.Option[specifier.Kind], len(kinds))
	for i, k := range kinds {
		options[i] = huh.NewOption(k.Label(), k)
	}

	var choice specifier.Kind
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[specifier.Kind]().
				Title(fmt.Sprintf("Specify version for package: %s", pkg)).
				Options(options...).
				Value(&choice),
		),
	).WithTheme(tui.Theme())

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("specifier menu aborted: %w", err)
	}
	return choice, nil
}

// AskVersion reads free-text version input for the chosen kind.
func (p *HuhPrompter) AskVersion(ctx context.Context, kind specifier.Kind, pkg string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s: %s", pkg, kind.Hint())).
				Value(&value),
		),
	).WithTheme(tui.Theme())

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("version input aborted: %w", err)
	}
	return value, nil
}

// AskUntilValid runs the retry loop for one package: select a kind, then
// keep asking for version text until it validates. The loop is unbounded;
// it only ends on a valid answer or a prompter error (ctrl-c, closed
// input). Each failed attempt prints a diagnostic and re-prompts.
func AskUntilValid(ctx context.Context, p Prompter, pkg string) (specifier.Specifier, error) {
	kind, err := p.SelectKind(ctx, pkg)
	if err != nil {
		return specifier.Specifier{}, err
	}

	if !kind.NeedsInput() {
		return specifier.Validate(kind, "")
	}

	for {
		raw, err := p.AskVersion(ctx, kind, pkg)
		if err != nil {
			return specifier.Specifier{}, err
		}
		spec, err := specifier.Validate(kind, raw)
		if err == nil {
			return spec, nil
		}
		printer.PrintWarning(fmt.Sprintf("Invalid specifier: %v. Please try again.", err))
	}
}

// Source adapts a Prompter to the manifest editor's SpecifierSource.
type Source struct {
	Prompter Prompter
}

// NewSource wraps p for use by the manifest editor.
func NewSource(p Prompter) *Source {
	return &Source{Prompter: p}
}

// SpecifierFor runs the full interactive flow for pkg.
func (s *Source) SpecifierFor(ctx context.Context, pkg string) (specifier.Specifier, error) {
	return AskUntilValid(ctx, s.Prompter, pkg)
}
