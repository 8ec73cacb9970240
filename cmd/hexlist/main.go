// Package main is the entry point for the hexlist CLI.
package main

import (
	"os"

	"github.com/dshills/hexlist/internal/cli"
	"github.com/dshills/hexlist/internal/logging"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", "err", err)
		return 1
	}
	return 0
}
