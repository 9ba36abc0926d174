// Package cli wires configuration, storage and use cases for the CLI commands.
package cli

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/application/usecase"
	"github.com/bnema/ballistic/internal/cli/styles"
	"github.com/bnema/ballistic/internal/domain/build"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/domain/repository"
	"github.com/bnema/ballistic/internal/infrastructure/config"
	"github.com/bnema/ballistic/internal/infrastructure/jsvm"
	"github.com/bnema/ballistic/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
	"github.com/bnema/ballistic/internal/infrastructure/weather"
	"github.com/bnema/ballistic/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	db        *sqlite.LazyDB
	Emissions repository.EmissionRepository

	// Use cases
	SimulateUC *usecase.SimulateTrajectoryUseCase
	VerifyUC   *usecase.VerifyDocumentUseCase
	HistoryUC  *usecase.ListEmissionsUseCase

	// Context with logger
	ctx context.Context
}

// NewApp loads the configuration (flags in flags override file and env) and
// creates the application. The database is opened on first use.
func NewApp(flags *pflag.FlagSet) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if flags != nil {
		if err := mgr.BindFlags(flags); err != nil {
			return nil, err
		}
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	emissions := sqlite.NewLazyEmissionRepository(db)

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("db_path", cfg.Database.Path).
		Msg("cli initialized")

	return &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		db:         db,
		Emissions:  emissions,
		SimulateUC: usecase.NewSimulateTrajectoryUseCase(),
		VerifyUC:   usecase.NewVerifyDocumentUseCase(jsvm.NewEvaluator()),
		HistoryUC:  usecase.NewListEmissionsUseCase(emissions),
		ctx:        ctx,
	}, nil
}

// Builder returns a document builder for the given scene section.
func Builder(scene config.SceneConfig) (*scenedoc.Builder, error) {
	opts := scenedoc.DefaultOptions()
	opts.ContainerID = scene.ContainerID
	opts.Height = scene.Height
	opts.LibraryURL = scene.LibraryURL
	return scenedoc.NewBuilder(opts)
}

// Params resolves a physics section to domain parameters. When the section
// names a wind source, its latest wind replaces wind_speed and wind_dir.
func (a *App) Params(ctx context.Context, section config.PhysicsConfig) (physics.Params, error) {
	params := section.Params()
	if section.WindSource == "" {
		return params, nil
	}
	return usecase.NewApplyWindUseCase(weather.NewCSVSource(section.WindSource)).Execute(ctx, params)
}

// BuildSceneUC returns the build use case for the current scene section.
func (a *App) BuildSceneUC() (*usecase.BuildSceneUseCase, error) {
	b, err := Builder(a.Config.Scene)
	if err != nil {
		return nil, err
	}
	return usecase.NewBuildSceneUseCase(b), nil
}

// PublishUC returns a publish use case posting to channel and recording
// emissions in the history database.
func (a *App) PublishUC(channel port.HostChannel) (*usecase.PublishComponentUseCase, error) {
	b, err := Builder(a.Config.Scene)
	if err != nil {
		return nil, err
	}
	return usecase.NewPublishComponentUseCase(b, channel, a.Emissions), nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// DBPath returns the history database location.
func (a *App) DBPath() string {
	return a.db.Path()
}
