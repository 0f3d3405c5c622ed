package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/sld2mapnik/pkg/cli"
	"mercator-hq/sld2mapnik/pkg/config"
	"mercator-hq/sld2mapnik/pkg/convert"
	"mercator-hq/sld2mapnik/pkg/telemetry/logging"
	"mercator-hq/sld2mapnik/pkg/telemetry/metrics"
)

// conversionFlags are shared by every command that translates documents.
type conversionFlags struct {
	srid          int
	datasource    string
	hexColors     bool
	legacyBetween bool
	metricsFile   string
}

func (f *conversionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.srid, "srid", 0, "EPSG code of the map spatial reference")
	cmd.Flags().StringVarP(&f.datasource, "datasource", "d", "", "vector or raster file attached to every layer (.shp, .geojson, .json, .tif, .tiff, .vrt)")
	cmd.Flags().BoolVar(&f.hexColors, "hex-colors", false, "write symbolizer colors as #rrggbb instead of rgb()")
	cmd.Flags().BoolVar(&f.legacyBetween, "legacy-between-spacing", false, `join PropertyIsBetween halves with "and " instead of " and "`)
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
}

// convertConfig returns cfg's convert section with flag overrides and an
// optional positional datasource applied.
func (f *conversionFlags) convertConfig(cmd *cobra.Command, cfg *config.Config, positional string) (config.ConvertConfig, error) {
	c := cfg.Convert

	if cmd.Flags().Changed("srid") {
		c.SRID = f.srid
	}
	if cmd.Flags().Changed("datasource") {
		c.Datasource = f.datasource
	}
	if positional != "" {
		if cmd.Flags().Changed("datasource") && f.datasource != positional {
			return c, cli.NewConfigError("datasource", "given both as an argument and with --datasource")
		}
		c.Datasource = positional
	}
	if cmd.Flags().Changed("hex-colors") {
		c.HexColors = f.hexColors
	}
	if cmd.Flags().Changed("legacy-between-spacing") {
		c.LegacyBetweenSpacing = f.legacyBetween
	}

	if c.SRID < 0 {
		return c, cli.NewConfigError("srid", "must not be negative")
	}
	return c, nil
}

// app holds the process-wide collaborators of a command run.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector

	textfile string
}

// newApp loads configuration and builds the logger and metrics
// collector. A --metrics-file enables metrics for the run.
func newApp(cmd *cobra.Command, flags *conversionFlags) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, cmd)
	if err != nil {
		return nil, err
	}

	metricsCfg := cfg.Telemetry.Metrics
	if flags != nil && flags.metricsFile != "" {
		metricsCfg.Enabled = true
		metricsCfg.Textfile = flags.metricsFile
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.NewCollector(&metricsCfg, nil),
		textfile: metricsCfg.Textfile,
	}, nil
}

// converter builds a converter for the given convert section.
func (a *app) converter(c *config.ConvertConfig) *convert.Converter {
	return convert.New(convert.OptionsFromConfig(c), a.logger, a.metrics)
}

// flushMetrics writes the metrics textfile, if one is configured.
func (a *app) flushMetrics() {
	if a.textfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.textfile); err != nil {
		a.logger.Error("failed to write metrics textfile", "path", a.textfile, "error", err)
		return
	}
	a.logger.Debug("wrote metrics textfile", "path", a.textfile)
}
