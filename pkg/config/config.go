package config

import "time"

// Config is the root configuration structure for sld2mapnik.
// It contains the conversion defaults, telemetry settings, and watch mode
// settings.
type Config struct {
	// Convert contains defaults for SLD to Mapnik conversion. Command-line
	// flags override these values.
	Convert ConvertConfig `yaml:"convert"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch contains configuration for the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// ConvertConfig contains defaults for a conversion.
type ConvertConfig struct {
	// SRID is an EPSG code for the map spatial reference. Zero means the
	// reference is derived from the datasource or left at the Mapnik default.
	// Default: 0
	SRID int `yaml:"srid"`

	// Datasource is the path of a vector or raster file attached to every
	// layer. Empty means layers have no datasource.
	// Default: ""
	Datasource string `yaml:"datasource"`

	// HexColors rewrites rgb(r,g,b) symbolizer colors as #rrggbb in the
	// generated document.
	// Default: false
	HexColors bool `yaml:"hex_colors"`

	// LegacyBetweenSpacing reproduces the historical "<lower>and <name>"
	// spacing of compiled PropertyIsBetween filters.
	// Default: false
	LegacyBetweenSpacing bool `yaml:"legacy_between_spacing"`

	// DefaultFont is the face name used when a TextSymbolizer has no
	// font-family parameter.
	// Default: "DejaVu Sans Book"
	DefaultFont string `yaml:"default_font"`

	// DefaultFontSize is the label size used when a TextSymbolizer has no
	// font-size parameter.
	// Default: 10
	DefaultFontSize int `yaml:"default_font_size"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes the source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether conversion metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "sld2mapnik"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name component after the namespace.
	// Default: "convert"
	Subsystem string `yaml:"subsystem"`

	// Textfile is a path where metrics are written in the Prometheus text
	// format after each conversion, for the node exporter textfile
	// collector. Empty disables the export.
	// Default: ""
	Textfile string `yaml:"textfile"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// DebounceInterval is how long to wait after the last file event
	// before converting again.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists the file extensions whose events trigger a
	// conversion.
	// Default: [".sld", ".xml"]
	Extensions []string `yaml:"extensions"`
}
