// Package cmd provides Cobra CLI commands for ballistic.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/cli"
	"github.com/bnema/ballistic/internal/domain/build"
	"github.com/bnema/ballistic/internal/domain/physics"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "ballistic",
		Short: "A projectile scene component for dashboard hosts",
		Long: `Ballistic builds an HTML document that animates a bullet leaving a gun
under wind and gravity with three.js, and hands it to a dashboard host.

The component announces itself with streamlit:componentReady, then sends the
document as its value with streamlit:setComponentValue, always addressed to
its own origin.

Use 'ballistic render' to print the document, 'ballistic publish' to deliver
it to a host, or 'ballistic serve' to run a local stand-in host and watch the
scene in a browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "schema":
				return nil
			}

			if app != nil {
				_ = app.Close()
			}
			var err error
			app, err = cli.NewApp(cmd.Flags())
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "emission history database path")
}

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

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// addPhysicsFlags registers the overrides for the four physics literals.
func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("wind-speed", physics.DefaultWindSpeed, "wind speed")
	cmd.Flags().Float64("wind-dir", physics.DefaultWindDir, "wind direction in degrees")
	cmd.Flags().Float64("bullet-speed", physics.DefaultBulletSpeed, "bullet speed")
	cmd.Flags().Float64("gravity", physics.DefaultGravity, "gravitational acceleration")
	cmd.Flags().String("wind-from", "", "weather CSV whose latest wind replaces --wind-speed and --wind-dir")
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
