package config

import (
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
)

// Default configuration constants
const (
	defaultServerAddr  = "127.0.0.1:8501"
	defaultHostOrigin  = "http://127.0.0.1:8501"
	defaultHostURL     = "ws://127.0.0.1:8501/ws"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	dirPerm            = 0o755
	filePerm           = 0o644
	configFileName     = "config.toml"
	schemaFileName     = "config.schema.json"
	configFileBaseName = "config"
)

// DefaultConfig returns the configuration that reproduces the canonical document.
func DefaultConfig() *Config {
	p := physics.DefaultParams()
	return &Config{
		Physics: PhysicsConfig{
			WindSpeed:   p.WindSpeed,
			WindDir:     p.WindDir,
			BulletSpeed: p.BulletSpeed,
			Gravity:     p.Gravity,
		},
		Scene: SceneConfig{
			ContainerID: scenedoc.DefaultContainerID,
			Height:      scenedoc.DefaultHeight,
			LibraryURL:  scenedoc.DefaultLibraryURL,
		},
		Host: HostConfig{
			Transport: HostTransportStdout,
			URL:       defaultHostURL,
			Origin:    defaultHostOrigin,
		},
		Server: ServerConfig{
			Addr: defaultServerAddr,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
