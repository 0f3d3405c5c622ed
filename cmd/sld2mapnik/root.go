package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/sld2mapnik/pkg/cli"
	"mercator-hq/sld2mapnik/pkg/config"
	"mercator-hq/sld2mapnik/pkg/telemetry/logging"
)

// defaultConfigFile is read when present and --config is not given.
const defaultConfigFile = "sld2mapnik.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sld2mapnik",
	Short: "Translate SLD styles into Mapnik XML",
	Long: `sld2mapnik translates OGC Styled Layer Descriptor (SLD 1.0 and SE 1.1)
documents into Mapnik XML style documents.

Layers, user styles, feature type styles, rules and symbolizers map onto
Mapnik layers, styles, rules and symbolizers. OGC filters compile to Mapnik
expressions such as "[pop] > 1000000".`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default "+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// configPath returns the configuration file to load. An explicit
// --config must exist; the default file is optional.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// loadConfig initializes the process configuration and returns it.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(configPath()); err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("config", "configuration not loaded")
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to stderr so that stdout
// carries only the converted document.
func newLogger(cfg *config.Config, cmd *cobra.Command) (*logging.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}
