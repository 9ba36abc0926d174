package config

import "github.com/bnema/ballistic/internal/domain/physics"

// Config represents the complete configuration for ballistic.
type Config struct {
	// Physics holds the values written into the scene script.
	Physics PhysicsConfig `mapstructure:"physics" toml:"physics" json:"physics"`
	// Scene controls the document markup around the script.
	Scene SceneConfig `mapstructure:"scene" toml:"scene" json:"scene"`
	// Host selects how the component reaches its dashboard host.
	Host HostConfig `mapstructure:"host" toml:"host" json:"host"`
	// Server configures the stand-in dashboard host started by `serve`.
	Server   ServerConfig   `mapstructure:"server" toml:"server" json:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// PhysicsConfig mirrors physics.Params.
type PhysicsConfig struct {
	WindSpeed   float64 `mapstructure:"wind_speed" toml:"wind_speed" json:"wind_speed" jsonschema:"description=Wind speed added along the wind direction"`
	WindDir     float64 `mapstructure:"wind_dir" toml:"wind_dir" json:"wind_dir" jsonschema:"description=Wind direction in degrees"`
	BulletSpeed float64 `mapstructure:"bullet_speed" toml:"bullet_speed" json:"bullet_speed" jsonschema:"description=Muzzle speed of the bullet"`
	Gravity     float64 `mapstructure:"gravity" toml:"gravity" json:"gravity" jsonschema:"description=Gravitational acceleration"`
	// WindSource is a weather CSV whose latest wind_speed_100m and
	// wind_direction_100m values replace WindSpeed and WindDir.
	WindSource string `mapstructure:"wind_source" toml:"wind_source" json:"wind_source" jsonschema:"description=Weather CSV supplying wind speed and direction"`
}

// Params converts the section to domain parameters.
func (p PhysicsConfig) Params() physics.Params {
	return physics.Params{
		WindSpeed:   p.WindSpeed,
		WindDir:     p.WindDir,
		BulletSpeed: p.BulletSpeed,
		Gravity:     p.Gravity,
	}
}

// SceneConfig holds the non-physics document options.
type SceneConfig struct {
	ContainerID string `mapstructure:"container_id" toml:"container_id" json:"container_id"`
	Height      int    `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
	LibraryURL  string `mapstructure:"library_url" toml:"library_url" json:"library_url"`
}

// HostTransport names a host channel implementation.
type HostTransport string

const (
	HostTransportStdout    HostTransport = "stdout"
	HostTransportWebsocket HostTransport = "websocket"
	HostTransportNone      HostTransport = "none"
)

// HostConfig configures the host channel used by `publish`.
type HostConfig struct {
	Transport HostTransport `mapstructure:"transport" toml:"transport" json:"transport" jsonschema:"enum=stdout,enum=websocket,enum=none"`
	// URL is the websocket endpoint of the host (transport = websocket).
	URL string `mapstructure:"url" toml:"url" json:"url"`
	// Origin is the page origin the component claims; messages target it.
	Origin string `mapstructure:"origin" toml:"origin" json:"origin"`
}

// ServerConfig configures the stand-in host.
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr" json:"addr"`
	// Origin defaults to http://<addr>.
	Origin string `mapstructure:"origin" toml:"origin" json:"origin"`
}

// DatabaseConfig holds the emission history location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}
