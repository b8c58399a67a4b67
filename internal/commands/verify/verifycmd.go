// Package verify implements the "verify" command: check every package in
// the manifest against the index and rewrite it per the invalid policy.
package verify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/reqwise/reqwise/internal/clix"
	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/core"
	"github.com/reqwise/reqwise/internal/manifest"
	"github.com/reqwise/reqwise/internal/printer"
	"github.com/reqwise/reqwise/internal/pypi"
	"github.com/reqwise/reqwise/internal/report"
	"github.com/reqwise/reqwise/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "verify" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that every package in the manifest exists on the index",
		UsageText: "reqwise verify [--policy comment|drop|keep] [--report FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "policy",
				Usage: "What to do with invalid packages: comment, drop, keep",
				Value: cfg.Policy,
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write per-package outcomes to a JSON report file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runVerifyCmd(ctx, cmd, cfg)
		},
	}
}

func runVerifyCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	path := cmd.String("file")

	m, err := manifest.Load(ctx, fs, path)
	if err != nil {
		return err
	}
	if len(m.Lines) == 0 {
		printer.PrintFaint("No packages to validate.")
		return nil
	}

	editor := manifest.NewEditor(clix.NewChecker(cmd), nil)
	opts := manifest.Options{
		Verify:   true,
		Policy:   manifest.ParseInvalidPolicy(cmd.String("policy")),
		Denylist: clix.Denylist(cfg),
	}

	var (
		out      []manifest.Line
		outcomes []manifest.Outcome
		editErr  error
	)
	run := func() {
		out, outcomes, editErr = editor.Edit(ctx, m.Lines, opts)
	}

	// Checks run sequentially and can take a while; show a spinner when
	// attached to a terminal.
	if tui.IsInteractive() {
		if err := spinner.New().Title("Checking packages on the index...").Action(run).Run(); err != nil {
			return err
		}
	} else {
		run()
	}
	if editErr != nil {
		return editErr
	}

	m.Lines = out
	if err := m.Save(ctx, fs); err != nil {
		return err
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		if err := report.Write(ctx, fs, reportPath, outcomes); err != nil {
			return err
		}
		printer.PrintFaint(fmt.Sprintf("Report written to %s", reportPath))
	}

	printOutcomes(outcomes)
	printer.PrintSuccess(fmt.Sprintf("%s updated (validation complete).", path))
	return nil
}

func printOutcomes(outcomes []manifest.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case pypi.Exists:
			printer.PrintFaint(fmt.Sprintf("ok       %s", o.Name))
		case pypi.NotFound:
			if o.Denied {
				printer.PrintWarning(fmt.Sprintf("denied   %s (reserved name)", o.Name))
			} else {
				printer.PrintError(fmt.Sprintf("missing  %s (not on the index)", o.Name))
			}
		case pypi.CheckFailed:
			printer.PrintWarning(fmt.Sprintf("unknown  %s (check failed: %v; kept)", o.Name, o.Err))
		}
	}
}
