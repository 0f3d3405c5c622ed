package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SLD2MAPNIK_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// An empty path yields the defaults. The configuration is not modified by
// environment variables; use LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SLD2MAPNIK_SECTION_FIELD (e.g., SLD2MAPNIK_CONVERT_SRID).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load a .env file from the working directory, if present
// 2. Load YAML from file
// 3. Apply default values
// 4. Apply environment variable overrides
// 5. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unparseable numeric and boolean values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Convert overrides
	if val := getenv("CONVERT_SRID"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Convert.SRID = i
		}
	}
	if val := getenv("CONVERT_DATASOURCE"); val != "" {
		cfg.Convert.Datasource = val
	}
	if val := getenv("CONVERT_HEX_COLORS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Convert.HexColors = b
		}
	}
	if val := getenv("CONVERT_LEGACY_BETWEEN_SPACING"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Convert.LegacyBetweenSpacing = b
		}
	}
	if val := getenv("CONVERT_DEFAULT_FONT"); val != "" {
		cfg.Convert.DefaultFont = val
	}
	if val := getenv("CONVERT_DEFAULT_FONT_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Convert.DefaultFontSize = i
		}
	}

	// Telemetry overrides
	if val := getenv("TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := getenv("TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := getenv("TELEMETRY_LOGGING_ADD_SOURCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.AddSource = b
		}
	}
	if val := getenv("TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := getenv("TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}
	if val := getenv("TELEMETRY_METRICS_SUBSYSTEM"); val != "" {
		cfg.Telemetry.Metrics.Subsystem = val
	}
	if val := getenv("TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}

	// Watch overrides
	if val := getenv("WATCH_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.DebounceInterval = d
		}
	}
	if val := getenv("WATCH_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		if len(exts) > 0 {
			cfg.Watch.Extensions = exts
		}
	}
}

func getenv(name string) string {
	return os.Getenv(EnvPrefix + name)
}
