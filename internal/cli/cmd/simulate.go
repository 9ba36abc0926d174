package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/cli/model"
	"github.com/bnema/ballistic/internal/cli/styles"
)

const defaultSimulateFrames = 40

var (
	simulateFrames int
	simulateJSON   bool
	simulateLive   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Compute the bullet trajectory frame by frame",
	Long: `Replay the scene's animation loop without a browser. Every frame adds
0.05 to t and places the bullet at the launch point plus the wind-adjusted
velocity times t, with gravity pulling the height down.

With --live the loop runs in the terminal at the browser's frame step and
plots the side view of the shot.

Examples:
  ballistic simulate --frames 20
  ballistic simulate --json --gravity 1.62
  ballistic simulate --live`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	addPhysicsFlags(simulateCmd)
	simulateCmd.Flags().IntVarP(&simulateFrames, "frames", "n", defaultSimulateFrames, "number of frames")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "output as JSON")
	simulateCmd.Flags().BoolVar(&simulateLive, "live", false, "animate in the terminal")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	params, err := app.Params(app.Ctx(), app.Config.Physics)
	if err != nil {
		return err
	}

	if simulateLive {
		if err := params.Validate(); err != nil {
			return err
		}
		p := tea.NewProgram(model.NewTrajectoryModel(app.Theme, params), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	frames, err := app.SimulateUC.Execute(app.Ctx(), params, simulateFrames)
	if err != nil {
		return err
	}

	if simulateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(frames)
	}

	rows := make([]table.Row, len(frames))
	for i, f := range frames {
		rows[i] = styles.FrameRow(f)
	}
	t := app.Theme
	tbl := styles.NewStyledTable(t, styles.FrameTableColumns(), rows, 50, len(rows)+1)

	v := params.Velocity()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("Trajectory "),
		t.MutedBadge(fmt.Sprintf("v = (%g, %g, %g)", v.X(), v.Y(), v.Z())),
	)
	if apex, ok := params.ApexTime(); ok {
		header += " " + t.MutedBadge(fmt.Sprintf("apex t=%.3f", apex))
	}

	fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, header, "", tbl.View()))
	return nil
}
