// Package manifest models a requirements.txt file as an ordered list of
// lines and provides the editor that resolves version specifiers and
// existence-check outcomes into a rewritten manifest. Line order is always
// preserved and comment lines pass through untouched.
package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/reqwise/reqwise/internal/core"
)

// LineKind distinguishes manifest line types.
type LineKind string

const (
	// KindComment is a line starting with '#', passed through verbatim.
	KindComment LineKind = "comment"

	// KindPackage is a package name with an optional specifier suffix.
	KindPackage LineKind = "package"
)

// specifierOperators are the characters that begin a specifier suffix.
const specifierOperators = "=<>!~"

// Line is one manifest line.
type Line struct {
	Kind LineKind

	// Raw is the authoritative text of the line. Untouched lines render
	// from Raw so formatting such as spaces around an operator survives
	// a rewrite; the editor rebuilds Raw when it assigns a specifier.
	Raw string

	// Name is the package name for KindPackage lines.
	Name string

	// Spec is the existing specifier suffix, empty when unpinned.
	Spec string
}

// Render returns the textual form of the line.
func (l Line) Render() string {
	if l.Raw != "" {
		return l.Raw
	}
	return l.Name + l.Spec
}

// Manifest is an ordered requirements file.
type Manifest struct {
	Path  string
	Lines []Line
}

// Parse splits raw manifest content into lines. Leading/trailing
// whitespace is trimmed per line and blank lines are dropped, matching
// how the file is consumed by pip.
func Parse(content string) []Line {
	var lines []Line
	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "#") {
			lines = append(lines, Line{Kind: KindComment, Raw: raw})
			continue
		}
		name, spec := splitSpecifier(raw)
		lines = append(lines, Line{Kind: KindPackage, Raw: raw, Name: name, Spec: spec})
	}
	return lines
}

// splitSpecifier separates "requests>=2.0" into name and suffix. Lines
// without an operator are plain names.
func splitSpecifier(raw string) (name, spec string) {
	if i := strings.IndexAny(raw, specifierOperators); i >= 0 {
		return strings.TrimSpace(raw[:i]), raw[i:]
	}
	return raw, ""
}

// Render joins lines with newlines. No trailing newline is appended:
// output mirrors input so an edit with nothing to do is byte-identical.
func Render(lines []Line) string {
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = l.Render()
	}
	return strings.Join(rendered, "\n")
}

// Load reads and parses the manifest at path.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Manifest, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return &Manifest{Path: path, Lines: Parse(string(data))}, nil
}

// Save writes lines back to the manifest's path.
func (m *Manifest) Save(ctx context.Context, fs core.FileSystem) error {
	if err := fs.WriteFile(ctx, m.Path, []byte(Render(m.Lines)), core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", m.Path, err)
	}
	return nil
}

// PackageNames returns the package names in manifest order.
func (m *Manifest) PackageNames() []string {
	var names []string
	for _, l := range m.Lines {
		if l.Kind == KindPackage {
			names = append(names, l.Name)
		}
	}
	return names
}
