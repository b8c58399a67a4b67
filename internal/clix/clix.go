// Package clix holds small helpers shared by reqwise subcommands.
package clix

import (
	"strings"

	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/pypi"
	"github.com/urfave/cli/v3"
)

// CommaSet splits a comma-separated list into a trimmed, deduplicated
// set. An empty or all-whitespace input yields an empty set.
func CommaSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}

// NewChecker builds the index checker from the root --index-url flag,
// falling back to the public index.
func NewChecker(cmd *cli.Command) *pypi.Checker {
	var opts []pypi.Option
	if indexURL := cmd.String("index-url"); indexURL != "" {
		opts = append(opts, pypi.WithBaseURL(indexURL))
	}
	return pypi.NewChecker(opts...)
}

// Denylist returns the configured denylist, nil meaning the default.
func Denylist(cfg *config.Config) []string {
	if len(cfg.Denylist) == 0 {
		return nil
	}
	return cfg.Denylist
}
