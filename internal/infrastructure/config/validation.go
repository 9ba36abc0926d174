package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/bnema/ballistic/internal/domain/entity"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
)

// validateConfig performs validation of all configuration sections.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validatePhysics(config)...)
	validationErrors = append(validationErrors, validateScene(config)...)
	validationErrors = append(validationErrors, validateHost(config)...)
	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validatePhysics(config *Config) []string {
	var validationErrors []string
	fields := []struct {
		key   string
		value float64
	}{
		{"physics.wind_speed", config.Physics.WindSpeed},
		{"physics.wind_dir", config.Physics.WindDir},
		{"physics.bullet_speed", config.Physics.BulletSpeed},
		{"physics.gravity", config.Physics.Gravity},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			validationErrors = append(validationErrors, f.key+" must be a finite number")
		}
	}
	if src := config.Physics.WindSource; src != "" && !strings.EqualFold(filepath.Ext(src), ".csv") {
		validationErrors = append(validationErrors, fmt.Sprintf("physics.wind_source must be a .csv file (got %q)", src))
	}
	return validationErrors
}

func validateScene(config *Config) []string {
	opts := scenedoc.DefaultOptions()
	opts.ContainerID = config.Scene.ContainerID
	opts.Height = config.Scene.Height
	opts.LibraryURL = config.Scene.LibraryURL
	if err := opts.Validate(); err != nil {
		return []string{"scene: " + err.Error()}
	}
	return nil
}

func validateHost(config *Config) []string {
	var validationErrors []string
	switch config.Host.Transport {
	case HostTransportStdout, HostTransportNone:
	case HostTransportWebsocket:
		if config.Host.URL == "" {
			validationErrors = append(validationErrors, "host.url is required for the websocket transport")
		}
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("host.transport must be one of stdout, websocket, none (got %q)", config.Host.Transport))
	}
	if _, err := entity.NormalizeOrigin(config.Host.Origin); err != nil {
		validationErrors = append(validationErrors, "host.origin: "+err.Error())
	}
	return validationErrors
}

func validateServer(config *Config) []string {
	var validationErrors []string
	if config.Server.Addr == "" {
		validationErrors = append(validationErrors, "server.addr must not be empty")
	}
	if _, err := entity.NormalizeOrigin(config.Server.Origin); err != nil {
		validationErrors = append(validationErrors, "server.origin: "+err.Error())
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	return validationErrors
}
