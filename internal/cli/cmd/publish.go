package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/cli/styles"
	"github.com/bnema/ballistic/internal/infrastructure/host"
	"github.com/bnema/ballistic/internal/logging"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Deliver the scene document to a host",
	Long: `Build the scene document, then post componentReady followed by
setComponentValue to the host, both addressed to the component's own origin.

Transports:
  stdout     one JSON line per message on stdout (default)
  websocket  to a host websocket endpoint, e.g. 'ballistic serve'
  none       build and record without sending anywhere

Delivery is fire-and-forget: an unreachable host is reported, never retried,
and does not make the command fail.

Examples:
  ballistic publish
  ballistic publish --transport websocket --url ws://127.0.0.1:8501/ws
  ballistic publish --origin https://dash.example.org`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	addPhysicsFlags(publishCmd)
	publishCmd.Flags().String("transport", "", "host transport: stdout, websocket, none")
	publishCmd.Flags().String("url", "", "host websocket URL")
	publishCmd.Flags().String("origin", "", "page origin messages are addressed to")
}

func runPublish(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := logging.WithComponent(app.Ctx(), "publish")
	cfg := app.Config

	channel, err := host.New(ctx, host.Options{
		Transport: string(cfg.Host.Transport),
		Origin:    cfg.Host.Origin,
		URL:       cfg.Host.URL,
		Out:       cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = channel.Close() }()

	params, err := app.Params(ctx, cfg.Physics)
	if err != nil {
		return err
	}
	uc, err := app.PublishUC(channel)
	if err != nil {
		return err
	}
	out, err := uc.Execute(ctx, usecase.PublishComponentInput{Params: params})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), renderPublishSummary(app.Theme, channel.Name(), out))
	return nil
}

func renderPublishSummary(t *styles.Theme, transport string, out *usecase.PublishComponentOutput) string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			t.Title.Render("Published "),
			t.MutedBadge(out.RunID),
			" ",
			t.AccentBadge(transport),
		),
		t.Subtle.Render(fmt.Sprintf("%s %s  %d bytes", styles.IconArrow, out.TargetOrigin, len(out.Document))),
	}
	for _, d := range out.Deliveries {
		line := t.DeliveryBadge(d.Delivered) + " " + t.Normal.Render(string(d.Type))
		if d.Err != nil {
			line += "  " + t.WarningStyle.Render(d.Err.Error())
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
