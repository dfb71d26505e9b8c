// Package cmd provides Cobra CLI commands for webshell.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/webshell/internal/cli"
	"github.com/bnema/webshell/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "webshell",
		Short: "A desktop shell that hosts one web application",
		Long: `WebShell - a single-window GTK4/WebKitGTK shell for one web application.

The page talks to the desktop through a script bridge: toasts, error
dialogs, version queries, logout, exit, blob downloads and barcode scans.

Run 'webshell run' (or 'webshell' with no arguments) to open the window,
or explore the subcommands for configuration, download history and a
headless probe of the bridge.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = appBuildInfo(app)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// runCmd is a placeholder for help - actual execution is in main.go
var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Open the shell window",
	Long: `Open the GTK4 shell window.

If a URL is provided it replaces app.start_url for this run.

Examples:
  webshell run                           # Open app.start_url
  webshell run https://staging.example   # Open another deployment`,
	Run: func(_ *cobra.Command, _ []string) {
		// This is handled by main.go before cobra runs
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// appBuildInfo applies the configured app version over the binary's.
func appBuildInfo(a *cli.App) build.Info {
	info := buildInfo
	if a.Config.App.VersionName != "" {
		info.Version = a.Config.App.VersionName
	}
	if a.Config.App.VersionCode != 0 {
		info.VersionCode = a.Config.App.VersionCode
	}
	return info
}
