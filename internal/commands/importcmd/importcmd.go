// Package importcmd implements the "import" command, seeding a
// requirements manifest from pyproject.toml dependencies.
package importcmd

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/core"
	"github.com/reqwise/reqwise/internal/manifest"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "import" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Seed the manifest from [project] dependencies in a pyproject.toml",
		UsageText: "reqwise import [--from pyproject.toml] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "Path to the pyproject.toml to import from",
				Value: "pyproject.toml",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing manifest",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runImportCmd(ctx, cmd)
		},
	}
}

func runImportCmd(ctx context.Context, cmd *cli.Command) error {
	fs := core.NewOSFileSystem()
	path := cmd.String("file")

	if fs.Exists(ctx, path) && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	lines, err := manifest.LoadPyproject(ctx, fs, cmd.String("from"))
	if err != nil {
		return err
	}

	m := &manifest.Manifest{Path: path, Lines: lines}
	if err := m.Save(ctx, fs); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Imported %d package(s) into %s.", len(m.PackageNames()), path))
	return nil
}
