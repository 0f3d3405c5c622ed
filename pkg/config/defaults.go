package config

import "time"

// Default values for configuration fields.
const (
	// Convert defaults
	DefaultFont     = "DejaVu Sans Book"
	DefaultFontSize = 10

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsNamespace = "sld2mapnik"
	DefaultMetricsSubsystem = "convert"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultWatchExtensions are the file extensions watched by default.
var DefaultWatchExtensions = []string{".sld", ".xml"}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Convert defaults
	if cfg.Convert.DefaultFont == "" {
		cfg.Convert.DefaultFont = DefaultFont
	}
	if cfg.Convert.DefaultFontSize == 0 {
		cfg.Convert.DefaultFontSize = DefaultFontSize
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	// Watch defaults
	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}
