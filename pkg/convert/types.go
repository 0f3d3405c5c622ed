package convert

import (
	"time"

	"mercator-hq/sld2mapnik/pkg/config"
	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/translate"
)

// Options configures a Converter.
type Options struct {
	// Translate configures the SLD to Mapnik translation.
	Translate translate.Options

	// HexColors rewrites rgb(r,g,b) symbolizer colors as #rrggbb in the
	// serialized document.
	HexColors bool
}

// OptionsFromConfig returns converter options for a convert section.
func OptionsFromConfig(cfg *config.ConvertConfig) Options {
	return Options{
		Translate: translate.OptionsFromConfig(cfg),
		HexColors: cfg.HexColors,
	}
}

// Result describes a finished conversion.
type Result struct {
	// RunID identifies the conversion in logs.
	RunID string

	// Map is the translated map.
	Map *mapnik.Map

	// Bytes is the size of the written document.
	Bytes int

	Duration time.Duration
}
