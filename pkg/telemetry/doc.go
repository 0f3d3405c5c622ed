// Package telemetry groups the observability packages of sld2mapnik.
//
// # Components
//
//   - logging: structured logging on log/slog with run and document context
//   - metrics: Prometheus conversion metrics, written as a textfile
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	defer collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile)
//
// Both are optional for library callers: convert.New accepts a nil logger
// and a nil collector.
package telemetry
