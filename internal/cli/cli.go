// Package cli assembles the root reqwise command.
package cli

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/commands/edit"
	"github.com/reqwise/reqwise/internal/commands/importcmd"
	"github.com/reqwise/reqwise/internal/commands/show"
	"github.com/reqwise/reqwise/internal/commands/verify"
	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/console"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/reqwise/reqwise/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command, configuring all
// subcommands and flags for the reqwise cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "reqwise",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Interactive version-specifier editor for requirements.txt",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Path to the requirements file",
				Value:       cfg.Manifest,
				DefaultText: "requirements.txt",
			},
			&urfavecli.StringFlag{
				Name:  "index-url",
				Usage: "Package index base URL",
				Value: cfg.IndexURL,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			console.SetNoColor(noColorFlag)
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			edit.Run(cfg),
			verify.Run(cfg),
			show.Run(cfg),
			importcmd.Run(cfg),
		},
	}
}
