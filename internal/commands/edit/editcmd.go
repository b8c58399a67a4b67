// Package edit implements the "edit" command: collect a version specifier
// for each flagged package and rewrite the manifest.
package edit

import (
	"context"
	"fmt"

	"github.com/reqwise/reqwise/internal/clix"
	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/core"
	"github.com/reqwise/reqwise/internal/manifest"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/reqwise/reqwise/internal/prompt"
	"github.com/reqwise/reqwise/internal/pypi"
	"github.com/reqwise/reqwise/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "edit" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Collect version specifiers for flagged packages and rewrite the manifest",
		UsageText: "reqwise edit [--packages a,b,c] [--verify] [--policy comment|drop|keep]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "packages",
				Aliases: []string{"p"},
				Usage:   "Comma-separated packages that need a specifier (default: config 'packages')",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Check each package against the index before editing",
			},
			&cli.StringFlag{
				Name:  "policy",
				Usage: "What to do with invalid packages: comment, drop, keep",
				Value: cfg.Policy,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runEditCmd(ctx, cmd, cfg)
		},
	}
}

func runEditCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	path := cmd.String("file")

	m, err := manifest.Load(ctx, fs, path)
	if err != nil {
		return err
	}
	if len(m.Lines) == 0 {
		printer.PrintFaint("No packages to process.")
		return nil
	}

	flagged := clix.CommaSet(cmd.String("packages"))
	if len(flagged) == 0 {
		flagged = cfg.FlaggedSet()
	}
	if len(flagged) > 0 && !tui.IsInteractive() {
		return fmt.Errorf("collecting specifiers requires an interactive terminal; run without --packages or use a TTY")
	}

	var checker manifest.ExistenceChecker
	if cmd.Bool("verify") {
		checker = clix.NewChecker(cmd)
	}

	editor := manifest.NewEditor(checker, prompt.NewSource(prompt.NewPrompter()))
	out, outcomes, err := editor.Edit(ctx, m.Lines, manifest.Options{
		Flagged:  flagged,
		Verify:   cmd.Bool("verify"),
		Policy:   manifest.ParseInvalidPolicy(cmd.String("policy")),
		Denylist: clix.Denylist(cfg),
	})
	if err != nil {
		return err
	}

	m.Lines = out
	if err := m.Save(ctx, fs); err != nil {
		return err
	}

	reportOutcomes(outcomes)
	printer.PrintSuccess(fmt.Sprintf("%s updated with version specifiers.", path))
	return nil
}

// reportOutcomes prints one diagnostic per noteworthy package.
func reportOutcomes(outcomes []manifest.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Status == pypi.CheckFailed:
			printer.PrintWarning(fmt.Sprintf("Could not verify %q (%v); kept in manifest.", o.Name, o.Err))
		case !o.Kept:
			printer.PrintError(fmt.Sprintf("Package %q is invalid and was removed or commented out.", o.Name))
		case o.Spec != "":
			printer.PrintInfo(fmt.Sprintf("%s%s", o.Name, o.Spec))
		}
	}
}
