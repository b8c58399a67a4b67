// Package version exposes the reqwise build version.
package version

// version is overridden at build time via -ldflags.
var version = "0.3.0"

// GetVersion returns the current reqwise version.
func GetVersion() string {
	return version
}
