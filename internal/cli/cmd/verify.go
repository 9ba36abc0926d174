package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/cli/styles"
)

const defaultVerifyFrames = 120

var (
	verifyInput     string
	verifyFrames    int
	verifyTolerance float64
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a document's script and check it against the physics model",
	Long: `Extract the inline script from a scene document, run it in an embedded
JavaScript VM with stand-ins for three.js and the browser, and compare the
bullet position after every frame with the Go model.

Without --input the document is built from the current configuration.
Use '-' to read the document from stdin.

Examples:
  ballistic verify
  ballistic render --gravity 3.7 | ballistic verify -i - --gravity 3.7`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addPhysicsFlags(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyInput, "input", "i", "", "document file to verify ('-' for stdin)")
	verifyCmd.Flags().IntVarP(&verifyFrames, "frames", "n", defaultVerifyFrames, "number of frames to compare")
	verifyCmd.Flags().Float64Var(&verifyTolerance, "tolerance", usecase.DefaultVerifyTolerance, "accepted per-axis deviation")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	params, err := app.Params(ctx, app.Config.Physics)
	if err != nil {
		return err
	}

	var doc string
	switch verifyInput {
	case "":
		uc, err := app.BuildSceneUC()
		if err != nil {
			return err
		}
		if doc, err = uc.Execute(ctx, params); err != nil {
			return err
		}
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		doc = string(data)
	default:
		data, err := os.ReadFile(verifyInput)
		if err != nil {
			return fmt.Errorf("read %s: %w", verifyInput, err)
		}
		doc = string(data)
	}

	out, err := app.VerifyUC.Execute(ctx, usecase.VerifyDocumentInput{
		Document:  doc,
		Params:    params,
		Frames:    verifyFrames,
		Tolerance: verifyTolerance,
	})
	t := app.Theme
	if err != nil {
		if out != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), t.ErrorStyle.Render(fmt.Sprintf(
				"%s frame %d deviates by %g", styles.IconX, out.WorstFrame, out.MaxDeviation)))
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.SuccessStyle.Render(fmt.Sprintf(
		"%s %d frames match the model (max deviation %g)", styles.IconCheck, out.Frames, out.MaxDeviation)))
	return nil
}
