// Package specifier validates user-supplied version constraints and renders
// them as requirements.txt specifier suffixes (e.g. "==1.2.*", ">=1.0,<2.0").
package specifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reqwise/reqwise/internal/pyver"
)

// ErrInvalid is the sentinel wrapped by every validation failure.
var ErrInvalid = errors.New("invalid specifier")

// Kind identifies one of the supported specifier shapes.
type Kind string

const (
	// Exact pins to a single version, wildcards allowed (==1.2.*).
	Exact Kind = "exact"

	// Excluded rules out a single version, wildcards allowed (!=1.2.*).
	Excluded Kind = "excluded"

	// Minimum sets a lower bound, strict versions only (>=1.0).
	Minimum Kind = "minimum"

	// Maximum sets an upper bound, strict versions only (<=2.0).
	Maximum Kind = "maximum"

	// Range bounds both sides, strict versions only (>=1.0,<2.0).
	Range Kind = "range"

	// Compatible is a compatible-release constraint (~=1.4).
	Compatible Kind = "compatible"

	// Latest means no constraint at all (empty specifier).
	Latest Kind = "latest"
)

// Kinds lists every kind in menu order.
func Kinds() []Kind {
	return []Kind{Exact, Excluded, Minimum, Maximum, Range, Compatible, Latest}
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case Exact, Excluded, Minimum, Maximum, Range, Compatible, Latest:
		return true
	default:
		return false
	}
}

// Label returns the human-readable menu label for the kind.
func (k Kind) Label() string {
	switch k {
	case Exact:
		return "Exact version (==, wildcards like 1.2.* allowed)"
	case Excluded:
		return "Excluded version (!=, wildcards like 1.2.* allowed)"
	case Minimum:
		return "Minimum version (>=, no wildcards)"
	case Maximum:
		return "Maximum version (<=, no wildcards)"
	case Range:
		return "Range (>=low,<high, no wildcards)"
	case Compatible:
		return "Compatible release (~=, no wildcards)"
	case Latest:
		return "Latest stable release (no specifier)"
	default:
		return string(k)
	}
}

// Hint returns the input prompt hint shown when asking for a version.
func (k Kind) Hint() string {
	switch k {
	case Exact:
		return "Exact version (e.g. 1.2.3 or 1.2.*)"
	case Excluded:
		return "Excluded version (e.g. 1.2.3 or 1.2.*)"
	case Minimum:
		return "Minimum version (e.g. 1.0)"
	case Maximum:
		return "Maximum version (e.g. 2.0)"
	case Range:
		return "Range as low,high (e.g. 1.0,2.0)"
	case Compatible:
		return "Base version for compatible release (e.g. 1.4)"
	default:
		return ""
	}
}

// NeedsInput reports whether the kind requires a version string from the
// user. Latest is the only kind that does not.
func (k Kind) NeedsInput() bool {
	return k != Latest
}

// Specifier is a validated version constraint ready to be appended to a
// package name.
type Specifier struct {
	Kind Kind

	// Version holds the single validated version for one-version kinds.
	Version string

	// Low and High hold the validated endpoints for Range.
	Low, High string
}

// String renders the specifier suffix. Latest renders as the empty string.
func (s Specifier) String() string {
	switch s.Kind {
	case Exact:
		return "==" + s.Version
	case Excluded:
		return "!=" + s.Version
	case Minimum:
		return ">=" + s.Version
	case Maximum:
		return "<=" + s.Version
	case Range:
		return fmt.Sprintf(">=%s,<%s", s.Low, s.High)
	case Compatible:
		return "~=" + s.Version
	default:
		return ""
	}
}

// Validate checks raw input against the grammar for the given kind and
// returns the resulting specifier. All errors wrap ErrInvalid so the
// interactive loop can distinguish bad input from programming mistakes.
func Validate(kind Kind, raw string) (Specifier, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case Exact, Excluded:
		if !pyver.IsWildcard(raw) {
			return Specifier{}, fmt.Errorf("%w: %q is not a version (wildcard %q suffix only allowed last)", ErrInvalid, raw, ".*")
		}
		return Specifier{Kind: kind, Version: raw}, nil

	case Minimum, Maximum, Compatible:
		if !pyver.IsStrict(raw) {
			return Specifier{}, fmt.Errorf("%w: %q is not a strict version", ErrInvalid, raw)
		}
		return Specifier{Kind: kind, Version: raw}, nil

	case Range:
		return validateRange(raw)

	case Latest:
		// Always valid; any input content is ignored.
		return Specifier{Kind: Latest}, nil

	default:
		return Specifier{}, fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}
}

// validateRange parses "low,high" and enforces strict ordering of the
// endpoints. A missing comma or missing field is malformed input, not a
// panic: the naive two-field split is guarded explicitly.
func validateRange(raw string) (Specifier, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 2 {
		return Specifier{}, fmt.Errorf("%w: range must be two comma-separated versions, got %q", ErrInvalid, raw)
	}

	low := strings.TrimSpace(fields[0])
	high := strings.TrimSpace(fields[1])
	if !pyver.IsStrict(low) {
		return Specifier{}, fmt.Errorf("%w: range lower bound %q is not a strict version", ErrInvalid, low)
	}
	if !pyver.IsStrict(high) {
		return Specifier{}, fmt.Errorf("%w: range upper bound %q is not a strict version", ErrInvalid, high)
	}

	cmp, err := pyver.Compare(low, high)
	if err != nil {
		return Specifier{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if cmp >= 0 {
		return Specifier{}, fmt.Errorf("%w: range lower bound %q must be strictly less than upper bound %q", ErrInvalid, low, high)
	}

	return Specifier{Kind: Range, Low: low, High: high}, nil
}
