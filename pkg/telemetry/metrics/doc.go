// Package metrics provides Prometheus metrics for SLD to Mapnik conversions.
//
// # Overview
//
// A Collector owns a private Prometheus registry and records how many
// conversions ran, how long they took, and what they produced: layers,
// styles, rules by selector, symbolizers by kind, and symbolizers skipped
// because the translator does not know them.
//
// The tool is a short-lived process, so metrics are not served over HTTP.
// WriteTextfile dumps the registry for the node exporter textfile
// collector instead.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordConversion(metrics.StatusSuccess, time.Since(start))
//	if err := collector.WriteTextfile("/var/lib/node_exporter/sld2mapnik.prom"); err != nil {
//		return err
//	}
//
// # Cardinality
//
// Skipped symbolizer element names come from user input. They are capped
// by a CardinalityLimiter and aggregated into "other" past the limit.
package metrics
