// Package pyver implements the version-string grammar and ordering used by
// requirements.txt specifiers. Two syntactic classes are recognized: strict
// versions (dot-separated non-negative integers, e.g. "1.2.3") and wildcard
// versions (a strict version with an optional trailing ".*", e.g. "1.2.*").
//
// Inputs longer than 128 bytes are rejected by both predicates, a cap on
// top of the otherwise unbounded grammar. Within that limit components may
// be arbitrarily large: ordering compares digit strings by magnitude, not
// machine integers.
package pyver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// strictRegex matches dot-separated non-negative integers with no
	// signs, spaces, or wildcard components.
	strictRegex = regexp.MustCompile(`^\d+(?:\.\d+)*$`)

	// wildcardRegex matches a strict version with an optional trailing
	// ".*" group. The wildcard is only valid as the final component.
	wildcardRegex = regexp.MustCompile(`^\d+(?:\.\d+)*(?:\.\*)?$`)

	// ErrNotStrict is returned when a comparison receives input outside
	// the strict grammar (wildcards included).
	ErrNotStrict = errors.New("not a strict version")
)

// maxVersionLength caps input length before regex matching.
const maxVersionLength = 128

// IsStrict reports whether s is a strict numeric version such as "1.2.3".
// Wildcard versions ("1.2.*") are rejected.
func IsStrict(s string) bool {
	return len(s) <= maxVersionLength && strictRegex.MatchString(s)
}

// IsWildcard reports whether s is a strict version with an optional
// trailing ".*". Every strict version is also wildcard-valid.
func IsWildcard(s string) bool {
	return len(s) <= maxVersionLength && wildcardRegex.MatchString(s)
}

// Compare orders two strict versions, returning -1, 0, or +1.
//
// Components are compared numerically left to right. Versions of unequal
// length are zero-padded before comparison, so "1.2" and "1.2.0" are
// equal. Leading zeros are insignificant ("1.01" equals "1.1"). Both
// inputs must satisfy IsStrict; otherwise ErrNotStrict is returned
// (wrapped with the offending input).
func Compare(a, b string) (int, error) {
	if !IsStrict(a) {
		return 0, fmt.Errorf("%w: %q", ErrNotStrict, a)
	}
	if !IsStrict(b) {
		return 0, fmt.Errorf("%w: %q", ErrNotStrict, b)
	}

	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for len(pa) < len(pb) {
		pa = append(pa, "0")
	}
	for len(pb) < len(pa) {
		pb = append(pb, "0")
	}

	for i := range pa {
		if c := compareComponent(pa[i], pb[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// compareComponent orders two all-digit strings by numeric magnitude:
// strip leading zeros, then a longer string is larger and equal-length
// strings compare byte-wise.
func compareComponent(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return strings.Compare(a, b)
	}
}
