package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/cli/styles"
)

const defaultHistoryLimit = 20

var (
	historyJSON  bool
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded host messages",
	Long: `List the host messages sent by publish and serve, newest first, with
per-message-type totals. Only payload size and digest are recorded, never the
document itself.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "maximum entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded messages")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	t := app.Theme

	if historyClear {
		if err := app.HistoryUC.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.SuccessStyle.Render(styles.IconCheck+" history cleared"))
		return nil
	}

	history, err := app.HistoryUC.Execute(ctx, historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	if len(history.Recent) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), t.Subtle.Render("No messages recorded yet"))
		return nil
	}

	badges := make([]string, 0, len(history.Totals)*2)
	for _, c := range history.Totals {
		badges = append(badges, t.MutedBadge(fmt.Sprintf("%s %d/%d", c.Type, c.Delivered, c.Total)), " ")
	}

	rows := make([]table.Row, len(history.Recent))
	for i, e := range history.Recent {
		rows[i] = styles.EmissionRow(e)
	}
	tbl := styles.NewStyledTable(t, styles.EmissionTableColumns(), rows, 100, len(rows)+1)

	fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(styles.IconDatabase+" Emission history"),
		lipgloss.JoinHorizontal(lipgloss.Top, badges...),
		"",
		tbl.View(),
	))
	return nil
}
