package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
	"github.com/bnema/ballistic/internal/logging"
)

const outputFilePerm = 0o644

var (
	renderComponent bool
	renderOutput    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the scene document",
	Long: `Build the scene document and write it to stdout or a file.

With the default configuration the output is the canonical document, byte for
byte. Physics flags and the [physics] config section change the literals
written into the script. --wind-from (or physics.wind_source) reads the
latest wind_speed_100m and wind_direction_100m from a weather CSV, converts
the speed to m/s and uses them instead of the configured wind.

With --component the document is wrapped in a standalone page whose script
posts componentReady and setComponentValue to window.parent, the way a
browser-hosted component announces itself.

Examples:
  ballistic render > scene.html
  ballistic render --wind-dir 90 -o crosswind.html
  ballistic render --wind-from data/processed/cleaned_weather.csv
  ballistic render --component -o component.html`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addPhysicsFlags(renderCmd)
	renderCmd.Flags().BoolVar(&renderComponent, "component", false, "wrap the document in a self-announcing component page")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to file instead of stdout")
}

func runRender(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	uc, err := app.BuildSceneUC()
	if err != nil {
		return err
	}
	params, err := app.Params(ctx, app.Config.Physics)
	if err != nil {
		return err
	}
	doc, err := uc.Execute(ctx, params)
	if err != nil {
		return err
	}

	if renderComponent {
		doc, err = scenedoc.ComponentPage(doc)
		if err != nil {
			return err
		}
	}

	if renderOutput == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(doc), outputFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", renderOutput, err)
	}
	logging.FromContext(ctx).Info().Str("path", renderOutput).Int("bytes", len(doc)).Msg("document written")
	return nil
}
