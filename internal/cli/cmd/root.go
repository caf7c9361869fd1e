// Package cmd provides Cobra CLI commands for chaoxe.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/cli"
	"github.com/chaoxe/miniapp/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootOpts  cli.Options
	rootCmd   = &cobra.Command{
		Use:   "chaoxe",
		Short: "Host tooling for the chaoxe mini program",
		Long: `chaoxe - host-side tooling for the chaoxe mini program.

The mini program shows arbitrary web pages in an embedded view. A script
injected into those pages reports title changes, link clicks and load
completion back to the host, which keeps the view's title, address and
breadcrumbs in sync.

This binary carries the host side of that bridge:
  - the injected page script and its host shim
  - a headless browser host and an in-process page simulator
  - a dev server exposing the bridge over HTTP and proxying the REST API
  - the REST API client, image resolver and navigation helpers`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cmd.Context(), rootOpts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigDir, "config-dir", "", "config directory (default: XDG config home)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.LogLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
