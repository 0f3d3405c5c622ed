package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/sld2mapnik/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Rule selectors used as the "selector" label of rules_total.
const (
	SelectorFilter = "filter"
	SelectorElse   = "else"
	SelectorAll    = "all"
)

// Conversion statuses used as the "status" label of conversions_total.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// otherLabel replaces label values once the cardinality limit is hit.
const otherLabel = "other"

// Collector owns the Prometheus registry for a process and records
// conversion metrics. A nil *Collector, or one whose configuration is
// disabled, ignores every call.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	conversion *ConversionMetrics

	// Skipped symbolizer elements come from the input document, so their
	// label set is bounded.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector with the specified configuration and
// Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "sld2mapnik",
//		Subsystem: "convert",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		conversion:         NewConversionMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(100),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordConversion records a finished conversion.
//
// Parameters:
//   - status: StatusSuccess or StatusError
//   - duration: Time from reading the document to writing the output
func (c *Collector) RecordConversion(status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordConversion(status, duration)
}

// RecordLayer records a translated layer.
func (c *Collector) RecordLayer() {
	if !c.enabled() {
		return
	}
	c.conversion.RecordLayer()
}

// RecordStyle records a style registration. duplicate reports whether
// the name was already registered on the map.
func (c *Collector) RecordStyle(duplicate bool) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordStyle(duplicate)
}

// RecordRule records a translated rule by selector: SelectorFilter,
// SelectorElse or SelectorAll.
func (c *Collector) RecordRule(selector string) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordRule(selector)
}

// RecordSymbolizer records an emitted Mapnik symbolizer by element name.
func (c *Collector) RecordSymbolizer(kind string) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordSymbolizer(kind)
}

// RecordSkippedSymbolizer records an SLD symbolizer that was skipped as
// unknown.
func (c *Collector) RecordSkippedSymbolizer(element string) {
	if !c.enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(fmt.Sprintf("skipped:%s", element)) {
		element = otherLabel
	}
	c.conversion.RecordSkippedSymbolizer(element)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node exporter textfile collector. The file is
// replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if !c.enabled() {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
