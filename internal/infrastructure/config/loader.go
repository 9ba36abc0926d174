// Package config loads ballistic's TOML configuration with viper, keeps it in
// sync with the file on disk and exposes it as typed sections.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bnema/ballistic/internal/domain/entity"
)

// FlagKeys maps CLI flag names to configuration keys.
var FlagKeys = map[string]string{
	"wind-speed":   "physics.wind_speed",
	"wind-dir":     "physics.wind_dir",
	"bullet-speed": "physics.bullet_speed",
	"gravity":      "physics.gravity",
	"wind-from":    "physics.wind_source",
	"transport":    "host.transport",
	"url":          "host.url",
	"origin":       "host.origin",
	"addr":         "server.addr",
	"db":           "database.path",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName(configFileBaseName)
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// BALLISTIC_PHYSICS_WIND_SPEED, BALLISTIC_HOST_ORIGIN, ...
	v.SetEnvPrefix("BALLISTIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "BALLISTIC_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind BALLISTIC_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "BALLISTIC_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind BALLISTIC_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// BindFlags lets the flags listed in FlagKeys override file and env values.
// Flags that flags does not define are skipped.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := m.viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

// reload unmarshals, normalizes and validates the viper state.
// Must be called with m.mu held for write.
func (m *Manager) reload(reread bool) error {
	if reread {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch HostTransport(strings.ToLower(string(config.Host.Transport))) {
	case "", HostTransportStdout:
		config.Host.Transport = HostTransportStdout
	case HostTransportWebsocket:
		config.Host.Transport = HostTransportWebsocket
	case HostTransportNone:
		config.Host.Transport = HostTransportNone
	}

	if origin, err := entity.NormalizeOrigin(config.Host.Origin); err == nil {
		config.Host.Origin = origin
	}

	config.Physics.WindSource = strings.TrimSpace(config.Physics.WindSource)
	config.Server.Addr = strings.TrimSpace(config.Server.Addr)
	if config.Server.Origin == "" && config.Server.Addr != "" {
		config.Server.Origin = "http://" + config.Server.Addr
	}
	if origin, err := entity.NormalizeOrigin(config.Server.Origin); err == nil {
		config.Server.Origin = origin
	}

	switch strings.ToLower(config.Logging.Level) {
	case "":
		config.Logging.Level = defaultLogLevel
	case "warning":
		config.Logging.Level = "warn"
	case "off":
		config.Logging.Level = "disabled"
	default:
		config.Logging.Level = strings.ToLower(config.Logging.Level)
	}
	config.Logging.Format = strings.ToLower(config.Logging.Format)
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	// Written from DefaultConfig, not from viper: viper's settings already
	// carry bound flags and BALLISTIC_* overrides for this run only.
	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}

	if err := WriteSchemaFile(filepath.Dir(configFile)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Note: Database.Path is resolved in reload(), no default needed

	m.viper.SetDefault("physics.wind_speed", defaults.Physics.WindSpeed)
	m.viper.SetDefault("physics.wind_dir", defaults.Physics.WindDir)
	m.viper.SetDefault("physics.bullet_speed", defaults.Physics.BulletSpeed)
	m.viper.SetDefault("physics.gravity", defaults.Physics.Gravity)
	m.viper.SetDefault("physics.wind_source", defaults.Physics.WindSource)

	m.viper.SetDefault("scene.container_id", defaults.Scene.ContainerID)
	m.viper.SetDefault("scene.height", defaults.Scene.Height)
	m.viper.SetDefault("scene.library_url", defaults.Scene.LibraryURL)

	m.viper.SetDefault("host.transport", string(defaults.Host.Transport))
	m.viper.SetDefault("host.url", defaults.Host.URL)
	m.viper.SetDefault("host.origin", defaults.Host.Origin)

	m.viper.SetDefault("server.addr", defaults.Server.Addr)
	m.viper.SetDefault("server.origin", defaults.Server.Origin)

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
