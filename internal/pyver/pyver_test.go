package pyver

import (
	"errors"
	"strings"
	"testing"
)

func TestIsStrict(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"1.2", true},
		{"1.2.3", true},
		{"0.0.0", true},
		{"10.200.3000", true},
		{"1.2.*", false},
		{"*", false},
		{"", false},
		{".", false},
		{"1.", false},
		{".1", false},
		{"1..2", false},
		{"1.2.3-alpha", false},
		{"v1.2.3", false},
		{"-1.2", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsStrict(tt.input); got != tt.want {
				t.Errorf("IsStrict(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWildcard(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"1.2.3", true},
		{"1.*", true},
		{"1.2.*", true},
		{"1.2.3.*", true},
		{"*", false},
		{"1.*.2", false},
		{"1.2.**", false},
		{"", false},
		{"1.2.", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsWildcard(tt.input); got != tt.want {
				t.Errorf("IsWildcard(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every strict version must also be wildcard-valid.
func TestStrictImpliesWildcard(t *testing.T) {
	for _, s := range []string{"0", "1.2", "1.2.3", "12.0.0.1"} {
		if !IsStrict(s) {
			t.Fatalf("IsStrict(%q) = false, want true", s)
		}
		if !IsWildcard(s) {
			t.Errorf("IsWildcard(%q) = false, want true for strict input", s)
		}
	}
}

func TestIsStrict_LengthCap(t *testing.T) {
	long := strings.Repeat("1.", 100) + "1"
	if IsStrict(long) {
		t.Errorf("IsStrict should reject input longer than %d chars", maxVersionLength)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.4", -1},
		{"2.0", "1.9.9", 1},
		{"1.0", "1.0", 0},
		{"1.2", "1.2.0", 0}, // zero-padded
		{"1.2.0.0", "1.2", 0},
		{"1.2", "1.2.1", -1},
		{"1.10", "1.9", 1}, // numeric, not lexicographic
		{"0.1", "0.0.9", 1},
		{"1.01", "1.1", 0}, // leading zeros insignificant
		{"1.000", "1.0", 0},
		// Components beyond 64-bit range compare by magnitude.
		{"9999999999999999999999", "10000000000000000000000", -1},
		{"1.18446744073709551616", "1.18446744073709551615", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Compare(%q, %q) returned error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompare_RejectsNonStrict(t *testing.T) {
	for _, pair := range [][2]string{
		{"1.2.*", "1.0"},
		{"1.0", "1.2.*"},
		{"", "1.0"},
		{"abc", "1.0"},
	} {
		_, err := Compare(pair[0], pair[1])
		if !errors.Is(err, ErrNotStrict) {
			t.Errorf("Compare(%q, %q) error = %v, want ErrNotStrict", pair[0], pair[1], err)
		}
	}
}
