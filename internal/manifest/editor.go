package manifest

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/pypi"
	"github.com/reqwise/reqwise/internal/specifier"
)

// InvalidPolicy decides what happens to a package line whose name is
// denied or definitively absent from the index.
type InvalidPolicy string

const (
	// PolicyCommentOut replaces the line with a commented-out diagnostic.
	PolicyCommentOut InvalidPolicy = "comment"

	// PolicyDrop removes the line from the output.
	PolicyDrop InvalidPolicy = "drop"

	// PolicyKeep leaves the line as-is; outcomes are reported only.
	PolicyKeep InvalidPolicy = "keep"
)

// IsValid reports whether p is a known policy.
func (p InvalidPolicy) IsValid() bool {
	switch p {
	case PolicyCommentOut, PolicyDrop, PolicyKeep:
		return true
	default:
		return false
	}
}

// ParseInvalidPolicy converts a string to an InvalidPolicy, falling back
// to PolicyCommentOut.
func ParseInvalidPolicy(s string) InvalidPolicy {
	p := InvalidPolicy(s)
	if p.IsValid() {
		return p
	}
	return PolicyCommentOut
}

// ExistenceChecker is the subset of the pypi checker the editor needs.
type ExistenceChecker interface {
	Check(ctx context.Context, name string) pypi.Result
}

// SpecifierSource supplies a validated specifier for a flagged package.
// The interactive implementation blocks until the user provides valid
// input; test implementations return canned specifiers.
type SpecifierSource interface {
	SpecifierFor(ctx context.Context, pkg string) (specifier.Specifier, error)
}

// Outcome records what happened to one package during an edit pass.
type Outcome struct {
	Name   string
	Status pypi.Status
	Denied bool

	// Spec is the specifier suffix appended to the line, if any.
	Spec string

	// Kept reports whether the line survived into the output.
	Kept bool

	Err error
}

// Options configures one edit pass.
type Options struct {
	// Flagged is the set of package names that need a specifier.
	Flagged map[string]bool

	// Verify enables the per-package existence check.
	Verify bool

	// Policy applies to denied and not-found packages when Verify is on.
	Policy InvalidPolicy

	// Denylist holds reserved names excluded regardless of the index.
	// Nil means pypi.DefaultDenylist().
	Denylist []string
}

// Editor rewrites a manifest according to Options. Checks run strictly
// sequentially, one package at a time, in manifest order.
type Editor struct {
	checker ExistenceChecker
	source  SpecifierSource
}

// NewEditor creates an Editor. checker may be nil when verification is
// never enabled; source may be nil when no packages are flagged.
func NewEditor(checker ExistenceChecker, source SpecifierSource) *Editor {
	return &Editor{checker: checker, source: source}
}

// Edit produces the output lines for the manifest plus a per-package
// outcome report. Comment lines pass through verbatim; package lines keep
// their input order. A transient check failure never removes a line, no
// matter the policy: dropping a package requires definitive evidence.
func (e *Editor) Edit(ctx context.Context, lines []Line, opts Options) ([]Line, []Outcome, error) {
	if opts.Verify && e.checker == nil {
		return nil, nil, fmt.Errorf("verification requested but no existence checker configured")
	}

	denylist := opts.Denylist
	if denylist == nil {
		denylist = pypi.DefaultDenylist()
	}

	var (
		out      []Line
		outcomes []Outcome
	)

	for _, line := range lines {
		if line.Kind == KindComment {
			out = append(out, line)
			continue
		}

		outcome := Outcome{Name: line.Name, Kept: true}

		if opts.Verify {
			keep, res := e.verifyLine(ctx, line, opts.Policy, denylist, &out)
			outcome.Status = res.Status
			outcome.Denied = pypi.Denied(line.Name, denylist)
			outcome.Err = res.Err
			if !keep {
				outcome.Kept = false
				outcomes = append(outcomes, outcome)
				continue
			}
		}

		if opts.Flagged[line.Name] {
			spec, err := e.source.SpecifierFor(ctx, line.Name)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve specifier for %q: %w", line.Name, err)
			}
			line.Spec = spec.String()
			line.Raw = line.Name + line.Spec
		}

		outcome.Spec = line.Spec
		out = append(out, line)
		outcomes = append(outcomes, outcome)
	}

	return out, outcomes, nil
}

// verifyLine runs the existence check for one package line and applies
// the invalid policy. It reports whether the line should be kept; when
// the policy is PolicyCommentOut it appends the diagnostic line itself.
func (e *Editor) verifyLine(ctx context.Context, line Line, policy InvalidPolicy, denylist []string, out *[]Line) (bool, pypi.Result) {
	if pypi.Denied(line.Name, denylist) {
		// Reserved names never reach the index.
		res := pypi.Result{Name: line.Name, Status: pypi.NotFound}
		return e.applyPolicy(line, policy, "reserved package name", out), res
	}

	res := e.checker.Check(ctx, line.Name)
	switch res.Status {
	case pypi.NotFound:
		return e.applyPolicy(line, policy, "not found on the package index", out), res
	case pypi.CheckFailed:
		// Keep: absence was not proven.
		return true, res
	default:
		return true, res
	}
}

// applyPolicy handles a definitively invalid package line.
func (e *Editor) applyPolicy(line Line, policy InvalidPolicy, reason string, out *[]Line) bool {
	switch policy {
	case PolicyDrop:
		return false
	case PolicyKeep:
		return true
	default: // PolicyCommentOut
		*out = append(*out, Line{
			Kind: KindComment,
			Raw:  fmt.Sprintf("# %s - %s", line.Render(), reason),
		})
		return false
	}
}
