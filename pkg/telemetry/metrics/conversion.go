package metrics

import (
	"time"

	"mercator-hq/sld2mapnik/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ConversionMetrics tracks SLD to Mapnik conversions.
//
// Metrics:
//   - sld2mapnik_convert_conversions_total: Conversions by status
//   - sld2mapnik_convert_conversion_duration_seconds: Conversion duration
//   - sld2mapnik_convert_layers_total: Layers translated
//   - sld2mapnik_convert_styles_total: Styles registered
//   - sld2mapnik_convert_duplicate_styles_total: Style names registered twice
//   - sld2mapnik_convert_rules_total: Rules by selector (filter, else, all)
//   - sld2mapnik_convert_symbolizers_total: Emitted symbolizers by kind
//   - sld2mapnik_convert_symbolizers_skipped_total: Unknown symbolizers by element
type ConversionMetrics struct {
	conversionsTotal   *prometheus.CounterVec
	conversionDuration prometheus.Histogram
	layersTotal        prometheus.Counter
	stylesTotal        prometheus.Counter
	duplicateStyles    prometheus.Counter
	rulesTotal         *prometheus.CounterVec
	symbolizersTotal   *prometheus.CounterVec
	symbolizersSkipped *prometheus.CounterVec
}

// NewConversionMetrics creates and registers conversion metrics with the
// provided registry.
func NewConversionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ConversionMetrics {
	cm := &ConversionMetrics{
		conversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversions_total",
				Help:      "Total number of SLD conversions",
			},
			[]string{"status"},
		),

		conversionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversion_duration_seconds",
				Help:      "Duration of SLD conversions in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
			},
		),

		layersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "layers_total",
				Help:      "Total number of translated layers",
			},
		),

		stylesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "styles_total",
				Help:      "Total number of registered styles",
			},
		),

		duplicateStyles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duplicate_styles_total",
				Help:      "Total number of style registrations that reused an existing name",
			},
		),

		rulesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rules_total",
				Help:      "Total number of translated rules by selector",
			},
			[]string{"selector"},
		),

		symbolizersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "symbolizers_total",
				Help:      "Total number of emitted Mapnik symbolizers by kind",
			},
			[]string{"kind"},
		),

		symbolizersSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "symbolizers_skipped_total",
				Help:      "Total number of SLD symbolizers skipped as unknown",
			},
			[]string{"element"},
		),
	}

	registry.MustRegister(
		cm.conversionsTotal,
		cm.conversionDuration,
		cm.layersTotal,
		cm.stylesTotal,
		cm.duplicateStyles,
		cm.rulesTotal,
		cm.symbolizersTotal,
		cm.symbolizersSkipped,
	)

	return cm
}

// RecordConversion records a finished conversion.
func (cm *ConversionMetrics) RecordConversion(status string, duration time.Duration) {
	cm.conversionsTotal.WithLabelValues(status).Inc()
	cm.conversionDuration.Observe(duration.Seconds())
}

// RecordLayer records a translated layer.
func (cm *ConversionMetrics) RecordLayer() {
	cm.layersTotal.Inc()
}

// RecordStyle records a style registration.
func (cm *ConversionMetrics) RecordStyle(duplicate bool) {
	cm.stylesTotal.Inc()
	if duplicate {
		cm.duplicateStyles.Inc()
	}
}

// RecordRule records a translated rule.
func (cm *ConversionMetrics) RecordRule(selector string) {
	cm.rulesTotal.WithLabelValues(selector).Inc()
}

// RecordSymbolizer records an emitted symbolizer.
func (cm *ConversionMetrics) RecordSymbolizer(kind string) {
	cm.symbolizersTotal.WithLabelValues(kind).Inc()
}

// RecordSkippedSymbolizer records an unknown symbolizer element.
func (cm *ConversionMetrics) RecordSkippedSymbolizer(element string) {
	cm.symbolizersSkipped.WithLabelValues(element).Inc()
}
