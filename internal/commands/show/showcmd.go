// Package show implements the read-only "show" command.
package show

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/core"
	"github.com/reqwise/reqwise/internal/manifest"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the parsed manifest without modifying it",
		UsageText: "reqwise show",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command) error {
	fs := core.NewOSFileSystem()
	path := cmd.String("file")

	m, err := manifest.Load(ctx, fs, path)
	if err != nil {
		return err
	}

	var pinned, unpinned int
	for _, line := range m.Lines {
		if line.Kind == manifest.KindComment {
			printer.PrintFaint(line.Raw)
			continue
		}
		if line.Spec != "" {
			pinned++
			fmt.Printf("%s%s\n", printer.Bold(line.Name), printer.Info(line.Spec))
		} else {
			unpinned++
			fmt.Println(printer.Bold(line.Name))
		}
	}

	printer.PrintFaint(fmt.Sprintf("%d package(s): %d with specifier, %d unpinned", pinned+unpinned, pinned, unpinned))
	return nil
}
