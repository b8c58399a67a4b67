// Package report persists verification outcomes as a JSON report. Existing
// report files are updated in place, one field at a time, so entries and
// fields written by other tooling survive a rewrite.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reqwise/reqwise/internal/core"
	"github.com/reqwise/reqwise/internal/manifest"
	"github.com/tidwall/sjson"
)

// Write merges the outcomes of one verification pass into the JSON report
// at path. A missing file starts from an empty document.
func Write(ctx context.Context, fs core.FileSystem, path string, outcomes []manifest.Outcome) error {
	data := []byte("{}")
	if fs.Exists(ctx, path) {
		existing, err := fs.ReadFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to read report %q: %w", path, err)
		}
		if len(existing) > 0 {
			data = existing
		}
	}

	data, err := sjson.SetBytes(data, "generated_at", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	for _, o := range outcomes {
		base := "packages." + escapeKey(o.Name)
		fields := map[string]any{
			"status": string(o.Status),
			"kept":   o.Kept,
		}
		if o.Denied {
			fields["denied"] = true
		}
		if o.Spec != "" {
			fields["specifier"] = o.Spec
		}
		if o.Err != nil {
			fields["error"] = o.Err.Error()
		}
		for field, value := range fields {
			data, err = sjson.SetBytes(data, base+"."+field, value)
			if err != nil {
				return fmt.Errorf("failed to update report entry for %q: %w", o.Name, err)
			}
		}
	}

	if err := fs.WriteFile(ctx, path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}
	return nil
}

// escapeKey protects dots in package names (e.g. zope.interface) from
// being interpreted as JSON path separators.
func escapeKey(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}
