package cmd

import (
	"context"
	"errors"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/cli"
	"github.com/bnema/ballistic/internal/infrastructure/config"
	"github.com/bnema/ballistic/internal/infrastructure/host"
	"github.com/bnema/ballistic/internal/infrastructure/hostserver"
	"github.com/bnema/ballistic/internal/logging"
)

var (
	serveWatch   bool
	servePublish bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stand-in dashboard host",
	Long: `Start an HTTP host that accepts component messages and shows the latest
component value in an iframe.

  GET /               host page
  GET /component      latest component value (text/html)
  GET /api/component  component state as JSON
  GET /ws             websocket endpoint for 'ballistic publish'

Unless --publish=false, the scene is published to the host in-process on
start. With --watch, editing the config file republishes the scene with the
new physics and scene settings; a configured wind source is read again on
every republish.

Examples:
  ballistic serve
  ballistic serve --addr 127.0.0.1:9000 --watch`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addPhysicsFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "republish when the config file changes")
	serveCmd.Flags().BoolVar(&servePublish, "publish", true, "publish the scene to the host on start")
}

func runServe(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	cfg := app.Config

	ctx, stop := signal.NotifyContext(logging.WithComponent(app.Ctx(), "serve"), unix.SIGINT, unix.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	srv, err := hostserver.New(hostserver.Config{
		Addr:        cfg.Server.Addr,
		Origin:      cfg.Server.Origin,
		FrameHeight: cfg.Scene.Height,
	})
	if err != nil {
		return err
	}
	srv.OnChange(func(s hostserver.State) {
		log.Info().
			Bool("ready", s.Ready).
			Bool("has_value", s.HasValue).
			Int("bytes", s.ValueSize).
			Int("messages", s.Messages).
			Msg("component state changed")
	})

	loopback := host.NewLoopback(srv.Origin(), srv)

	var changes <-chan *config.Config
	if serveWatch {
		if changes, err = watchConfig(app.Manager); err != nil {
			return err
		}
		log.Info().Str("config", app.Manager.GetConfigFile()).Msg("watching config")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})

	g.Go(func() error {
		if servePublish {
			if err := publishTo(gctx, app, loopback, cfg); err != nil {
				return err
			}
		}
		republishLoop(gctx, app, loopback, changes)
		return nil
	})

	return g.Wait()
}

// watchConfig starts the config watcher and returns the reloaded configs.
// Only the latest pending change is kept.
func watchConfig(mgr *config.Manager) (<-chan *config.Config, error) {
	changes := make(chan *config.Config, 1)
	mgr.OnConfigChange(func(c *config.Config) {
		select {
		case <-changes:
		default:
		}
		changes <- c
	})
	if err := mgr.Watch(); err != nil {
		return nil, err
	}
	return changes, nil
}

// republishLoop publishes every config from changes until ctx is done.
// A nil changes channel just waits for ctx.
func republishLoop(ctx context.Context, app *cli.App, channel *host.Loopback, changes <-chan *config.Config) {
	log := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-changes:
			if err := publishTo(ctx, app, channel, c); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("republish failed, keeping previous component value")
			}
		}
	}
}

func publishTo(ctx context.Context, app *cli.App, channel *host.Loopback, cfg *config.Config) error {
	params, err := app.Params(ctx, cfg.Physics)
	if err != nil {
		return err
	}
	b, err := cli.Builder(cfg.Scene)
	if err != nil {
		return err
	}
	uc := usecase.NewPublishComponentUseCase(b, channel, app.Emissions)
	out, err := uc.Execute(ctx, usecase.PublishComponentInput{Params: params})
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("run", out.RunID).Bool("delivered", out.Delivered()).Msg("scene published to host")
	return nil
}
