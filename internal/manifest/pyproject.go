package manifest

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/reqwise/reqwise/internal/core"
)

// pyprojectFile maps the subset of PEP 621 metadata the import needs.
type pyprojectFile struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// LoadPyproject reads [project] dependencies from a pyproject.toml and
// returns them as manifest lines, preserving declaration order. Entries
// already carrying a specifier keep it.
func LoadPyproject(ctx context.Context, fs core.FileSystem, path string) ([]Line, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	if len(file.Project.Dependencies) == 0 {
		return nil, fmt.Errorf("no [project] dependencies found in %q", path)
	}

	var lines []Line
	for _, dep := range file.Project.Dependencies {
		parsed := Parse(dep)
		lines = append(lines, parsed...)
	}
	return lines, nil
}
