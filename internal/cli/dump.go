package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/hexlist/internal/config"
	"github.com/dshills/hexlist/internal/fixture"
	"github.com/dshills/hexlist/internal/listing"
	"github.com/dshills/hexlist/internal/logging"
)

func newDumpCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var reverse bool
	var watch bool
	var indent string

	cmd := &cobra.Command{
		Use:   "dump <structure.xml>",
		Short: "Render the structure listing described by an XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			opts := listing.Options{Indent: cfg.Indent, Reverse: reverse}
			if indent != "" {
				opts.Indent = indent
			}

			path := args[0]
			render := func() error {
				tc, err := fixture.Load(path)
				if err != nil {
					return err
				}
				return listing.Render(cmd.OutOrStdout(), tc.Root, opts)
			}

			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndRender(path, render)
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false,
		"walk the token stream bottom-up (output is identical)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"re-render whenever the file changes")
	cmd.Flags().StringVar(&indent, "indent", "",
		"indentation per depth level")

	return cmd
}

// watchAndRender re-renders on every change to path until interrupted.
func watchAndRender(path string, render func() error) error {
	w, err := config.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Watch(path); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	logger := logging.Default()
	for {
		select {
		case changed, ok := <-w.Events():
			if !ok {
				return nil
			}
			logger.Info("re-rendering", "path", changed)
			if err := render(); err != nil {
				// Partial writes happen while an editor is saving; keep
				// watching rather than bail.
				logger.Warn("render failed", "err", err)
			}
		case <-sig:
			return nil
		}
	}
}
