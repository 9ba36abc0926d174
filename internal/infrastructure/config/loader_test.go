package config

import (
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/domain/physics"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func writeConfig(t *testing.T, root, body string) string {
	t.Helper()
	path := filepath.Join(root, "config", appName, configFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), dirPerm))
	require.NoError(t, os.WriteFile(path, []byte(body), filePerm))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.InDelta(t, 9.81, mgr.viper.GetFloat64("physics.gravity"), 0)
	assert.Equal(t, "stdout", mgr.viper.GetString("host.transport"))
	assert.Equal(t, "127.0.0.1:8501", mgr.viper.GetString("server.addr"))
}

func TestManagerLoad_CreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, physics.DefaultParams(), cfg.Physics.Params())
	assert.Equal(t, HostTransportStdout, cfg.Host.Transport)
	assert.Equal(t, "http://127.0.0.1:8501", cfg.Server.Origin)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.Database.Path)

	assert.FileExists(t, filepath.Join(root, "config", appName, configFileName))
	assert.FileExists(t, filepath.Join(root, "config", appName, schemaFileName))
}

func TestManagerLoad_ReadsFileAndEnv(t *testing.T) {
	root := isolateXDG(t)
	writeConfig(t, root, `
[physics]
wind_speed = 4
wind_dir = 90

[host]
transport = "WebSocket"
origin = "HTTP://Example.com:80"
`)
	t.Setenv("BALLISTIC_PHYSICS_GRAVITY", "1.62")
	t.Setenv("BALLISTIC_LOG_LEVEL", "warning")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.InDelta(t, 4, cfg.Physics.WindSpeed, 0)
	assert.InDelta(t, 90, cfg.Physics.WindDir, 0)
	assert.InDelta(t, 50, cfg.Physics.BulletSpeed, 0)
	assert.InDelta(t, 1.62, cfg.Physics.Gravity, 1e-12)
	assert.Equal(t, HostTransportWebsocket, cfg.Host.Transport)
	assert.Equal(t, "http://example.com", cfg.Host.Origin)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestManagerLoad_RejectsInvalidValues(t *testing.T) {
	root := isolateXDG(t)
	writeConfig(t, root, `
[physics]
gravity = nan

[host]
origin = "*"
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "physics.gravity must be a finite number")
	assert.Contains(t, err.Error(), "host.origin")
}

func TestManagerLoad_MalformedFile(t *testing.T) {
	root := isolateXDG(t)
	writeConfig(t, root, "[physics\nwind_speed = ")

	mgr, err := NewManager()
	require.NoError(t, err)
	assert.Error(t, mgr.Load())
}

func TestManagerBindFlags(t *testing.T) {
	isolateXDG(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("wind-speed", 10, "")
	flags.String("origin", "", "")
	flags.Bool("unrelated", false, "")
	require.NoError(t, flags.Parse([]string{"--wind-speed=3", "--origin=https://dash.example.org"}))

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.BindFlags(flags))
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.InDelta(t, 3, cfg.Physics.WindSpeed, 0)
	assert.Equal(t, "https://dash.example.org", cfg.Host.Origin)
	assert.InDelta(t, 9.81, cfg.Physics.Gravity, 0)
}

func TestManagerLoad_DefaultFileIgnoresOverrides(t *testing.T) {
	root := isolateXDG(t)
	t.Setenv("BALLISTIC_HOST_ORIGIN", "https://dash.example.org")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("gravity", 9.81, "")
	require.NoError(t, flags.Parse([]string{"--gravity=1.62"}))

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.BindFlags(flags))
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.InDelta(t, 1.62, cfg.Physics.Gravity, 1e-12)
	assert.Equal(t, "https://dash.example.org", cfg.Host.Origin)

	data, err := os.ReadFile(filepath.Join(root, "config", appName, configFileName))
	require.NoError(t, err)
	saved := string(data)
	assert.Contains(t, saved, "gravity = 9.81")
	assert.Contains(t, saved, "origin = 'http://127.0.0.1:8501'")
	assert.NotContains(t, saved, "1.62")
	assert.NotContains(t, saved, "dash.example.org")

	fresh, err := NewManager()
	require.NoError(t, err)
	t.Setenv("BALLISTIC_HOST_ORIGIN", "")
	require.NoError(t, fresh.Load())
	assert.Equal(t, physics.DefaultParams(), fresh.Get().Physics.Params())
}

func TestWriteConfig_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte("[physics]\nwind_speed = 3\n"), filePerm))

	err := WriteConfig(DefaultConfig(), path)
	require.ErrorIs(t, err, ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[physics]\nwind_speed = 3\n", string(data))
}

func TestManagerLoad_WindSource(t *testing.T) {
	root := isolateXDG(t)
	writeConfig(t, root, "[physics]\nwind_source = \"  data/processed/cleaned_weather.csv \"\n")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	assert.Equal(t, "data/processed/cleaned_weather.csv", mgr.Get().Physics.WindSource)
}

func TestManagerWatch_ReloadsOnChange(t *testing.T) {
	root := isolateXDG(t)
	path := writeConfig(t, root, "[physics]\nwind_speed = 10\n")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var notified atomic.Int32
	mgr.OnConfigChange(func(*Config) { notified.Add(1) })
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch())

	require.NoError(t, os.WriteFile(path, []byte("[physics]\nwind_speed = 25\n"), filePerm))

	require.Eventually(t, func() bool {
		return mgr.Get().Physics.WindSpeed == 25
	}, 5*time.Second, 20*time.Millisecond)
	assert.Positive(t, notified.Load())
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host.Transport = "STDOUT"
	cfg.Server.Addr = " 0.0.0.0:9000 "
	cfg.Server.Origin = ""
	cfg.Logging.Level = "OFF"
	cfg.Logging.Format = ""

	normalizeConfig(cfg)

	assert.Equal(t, HostTransportStdout, cfg.Host.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "http://0.0.0.0:9000", cfg.Server.Origin)
	assert.Equal(t, "disabled", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestValidateConfig(t *testing.T) {
	valid := DefaultConfig()
	normalizeConfig(valid)
	require.NoError(t, validateConfig(valid))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"infinite wind", func(c *Config) { c.Physics.WindSpeed = math.Inf(1) }, "physics.wind_speed"},
		{"bad container", func(c *Config) { c.Scene.ContainerID = `x" onload="` }, "scene:"},
		{"zero height", func(c *Config) { c.Scene.Height = 0 }, "scene:"},
		{"unknown transport", func(c *Config) { c.Host.Transport = "carrier-pigeon" }, "host.transport"},
		{"websocket without url", func(c *Config) {
			c.Host.Transport = HostTransportWebsocket
			c.Host.URL = ""
		}, "host.url"},
		{"null origin", func(c *Config) { c.Host.Origin = "null" }, "host.origin"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"wind source not csv", func(c *Config) { c.Physics.WindSource = "forecast.json" }, "physics.wind_source"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			normalizeConfig(cfg)
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"wind_speed"`)
	assert.Contains(t, s, `"transport"`)
	assert.Contains(t, s, `"websocket"`)
	assert.Contains(t, s, "ballistic configuration")
}
