// Package cli provides the Cobra command structure for hexlist.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/hexlist/internal/config"
	"github.com/dshills/hexlist/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root hexlist command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var logLevel string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hexlist",
		Short: "Render structure listings of binary files",
		Long: `hexlist renders the structure listing of an annotated binary: a tree of
named, bit-addressed regions is expanded into an indented stream of title,
content, and summary lines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"logging level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file")

	loadConfig := func() (*config.Config, error) {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logging.SetLevel(cfg.LogLevel)
		return cfg, nil
	}

	rootCmd.AddCommand(newDumpCommand(loadConfig))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
