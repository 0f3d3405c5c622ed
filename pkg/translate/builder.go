package translate

import (
	"fmt"
	"log/slog"
	"strings"

	"mercator-hq/sld2mapnik/pkg/config"
	"mercator-hq/sld2mapnik/pkg/datasource"
	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
	"mercator-hq/sld2mapnik/pkg/telemetry/metrics"
)

// Options configures a translation.
type Options struct {
	// SRID, when positive, sets the map SRS to "+init=epsg:<SRID>".
	SRID int

	// Datasource is the path of a file attached to every layer. Empty
	// means layers carry no datasource.
	Datasource string

	// Projection derives the SRS from the datasource when SRID is unset.
	// Nil reads "<base>.prj" next to the datasource.
	Projection datasource.ProjectionReader

	// LegacyBetweenSpacing is passed to the filter compiler.
	LegacyBetweenSpacing bool

	// DefaultFont and DefaultFontSize apply to text symbolizers without
	// font-family or font-size.
	DefaultFont     string
	DefaultFontSize int
}

// OptionsFromConfig returns translation options for a convert section.
func OptionsFromConfig(cfg *config.ConvertConfig) Options {
	return Options{
		SRID:                 cfg.SRID,
		Datasource:           cfg.Datasource,
		LegacyBetweenSpacing: cfg.LegacyBetweenSpacing,
		DefaultFont:          cfg.DefaultFont,
		DefaultFontSize:      cfg.DefaultFontSize,
	}
}

// Translator converts SLD documents into Mapnik maps. It holds no
// per-document state and may be reused.
type Translator struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Collector
}

// New creates a translator. A nil logger discards output and a nil
// collector records nothing.
func New(opts Options, logger *slog.Logger, collector *metrics.Collector) *Translator {
	if opts.DefaultFont == "" {
		opts.DefaultFont = config.DefaultFont
	}
	if opts.DefaultFontSize <= 0 {
		opts.DefaultFontSize = config.DefaultFontSize
	}
	if opts.Projection == nil {
		opts.Projection = datasource.PrjReader{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{opts: opts, logger: logger, metrics: collector}
}

// Build translates doc with the given options. See Translator.Build.
func Build(doc *sld.Document, opts Options) (*mapnik.Map, error) {
	return New(opts, nil, nil).Build(doc)
}

// Build translates doc into a map. NamedLayers are translated before
// UserLayers and style names are numbered across the whole document.
func (t *Translator) Build(doc *sld.Document) (*mapnik.Map, error) {
	m := mapnik.NewMap()

	ds, srs, err := t.resolveDatasource()
	if err != nil {
		return nil, err
	}
	if srs != "" {
		m.SRS = srs
	}

	idx := &StyleIndex{}
	for _, l := range doc.Layers() {
		layer, styles, err := t.TranslateLayer(l, idx)
		if err != nil {
			return nil, err
		}

		for _, ns := range styles {
			duplicate := m.AppendStyle(ns.Name, ns.Style)
			if duplicate {
				t.logger.Warn("duplicate style name", "style", ns.Name, "layer", layer.Name)
			}
			t.metrics.RecordStyle(duplicate)
		}

		layer.SRS = m.SRS
		layer.Datasource = ds
		m.AddLayer(layer)
		t.metrics.RecordLayer()

		t.logger.Debug("translated layer",
			"layer", layer.Name,
			"styles", strings.Join(layer.StyleNames, ","),
		)
	}

	return m, nil
}

// resolveDatasource returns the shared datasource and the SRS to use, or
// an empty SRS to keep the Mapnik default. An explicit SRID wins over a
// projection read from the datasource.
func (t *Translator) resolveDatasource() (*mapnik.Datasource, string, error) {
	var srs string
	if t.opts.SRID > 0 {
		srs = datasource.EPSG(t.opts.SRID)
	}

	if t.opts.Datasource == "" {
		return nil, srs, nil
	}

	src, err := datasource.Resolve(t.opts.Datasource)
	if err != nil {
		return nil, "", err
	}

	if srs == "" {
		projection, ok, err := t.opts.Projection.Projection(src.Base)
		if err != nil {
			return nil, "", fmt.Errorf("datasource %s: %w", src.Path, err)
		}
		if ok {
			srs = projection
		} else {
			t.logger.Debug("no projection found for datasource", "path", src.Path)
		}
	}

	return src.Mapnik(), srs, nil
}

func (t *Translator) filterOptions() FilterOptions {
	return FilterOptions{LegacyBetweenSpacing: t.opts.LegacyBetweenSpacing}
}
