package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/cli/styles"
	"github.com/bnema/ballistic/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the configuration file, the effective settings and their schema.

The file lives in $XDG_CONFIG_HOME/ballistic/config.toml (./.dev/ballistic with
ENV=dev) and is created with defaults on first run. Every key can be
overridden with a BALLISTIC_ environment variable, e.g.
BALLISTIC_PHYSICS_WIND_SPEED=4 or BALLISTIC_LOG_LEVEL=debug.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and database paths",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after file, environment and flag overrides are applied.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	t := app.Theme
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		t.HelpKey.Render(styles.IconConfig), t.Subtle.Render("config  "), app.Manager.GetConfigFile())
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		t.HelpKey.Render(styles.IconDatabase), t.Subtle.Render("database"), app.DBPath())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(app.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
