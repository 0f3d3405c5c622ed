// Package config provides configuration management for sld2mapnik.
//
// This package loads, validates, and manages configuration from YAML files
// with environment variable overrides. Every field has a default, so the
// tool runs without a configuration file.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only (an empty path yields the defaults):
//     cfg, err := config.LoadConfig("sld2mapnik.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("sld2mapnik.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SLD2MAPNIK_SECTION_FIELD.
// For example:
//
//   - SLD2MAPNIK_CONVERT_SRID overrides convert.srid
//   - SLD2MAPNIK_CONVERT_HEX_COLORS overrides convert.hex_colors
//   - SLD2MAPNIK_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - SLD2MAPNIK_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
//
// A .env file in the working directory is loaded first, so its values act
// as environment variables that the real environment can still override.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Command-line flags (applied by the CLI)
//
// # Example Configuration
//
//	convert:
//	  srid: 3857
//	  hex_colors: true
//	  default_font: "DejaVu Sans Book"
//
//	telemetry:
//	  logging:
//	    level: "debug"
//	    format: "json"
//	  metrics:
//	    enabled: true
//	    textfile: "/var/lib/node_exporter/sld2mapnik.prom"
//
//	watch:
//	  debounce_interval: 250ms
//
// # Thread Safety
//
// The package-level configuration set by Initialize is guarded by a
// read-write lock, so GetConfig may be called while the watch command
// reloads the file.
package config
