// Command reqwise interactively edits version specifiers in a Python
// requirements.txt and verifies package names against the PyPI index.
package main

import (
	"context"
	"os"

	"github.com/reqwise/reqwise/internal/cli"
	"github.com/reqwise/reqwise/internal/config"
	"github.com/reqwise/reqwise/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads configuration and runs the root command. It returns
// instead of exiting so tests can drive it directly.
func runCLI(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
