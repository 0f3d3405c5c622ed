package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
)

// translatorFunc converts one decoded symbolizer into zero or more Mapnik
// symbolizers.
type translatorFunc func(t *Translator, s sld.Symbolizer) ([]mapnik.Symbolizer, error)

var symbolizerTranslators = map[sld.SymbolizerKind]translatorFunc{
	sld.SymbolizerLine:    (*Translator).translateLine,
	sld.SymbolizerPolygon: (*Translator).translatePolygon,
	sld.SymbolizerPoint:   (*Translator).translatePoint,
	sld.SymbolizerText:    (*Translator).translateText,
	sld.SymbolizerRaster:  (*Translator).translateRaster,
}

// TranslateSymbolizer converts s into Mapnik symbolizers in output order.
// Unknown symbolizers yield nil without an error.
func (t *Translator) TranslateSymbolizer(s sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	fn, ok := symbolizerTranslators[s.Kind()]
	if !ok {
		tag := s.Tag()
		t.logger.Warn("skipping unsupported symbolizer",
			"element", tag.Local,
			"namespace", tag.Space,
		)
		t.metrics.RecordSkippedSymbolizer(tag.Local)
		return nil, nil
	}

	out, err := fn(t, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Tag().Local, err)
	}
	return out, nil
}

func (t *Translator) translateLine(s sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	line := s.(*sld.LineSymbolizer)

	stroke := mapnik.NewStroke()
	if line.Stroke != nil {
		var err error
		if stroke, err = buildStroke(line.Stroke.Parameters()); err != nil {
			return nil, err
		}
	}
	return []mapnik.Symbolizer{mapnik.NewLineSymbolizer(stroke)}, nil
}

// translatePolygon emits the border as a separate LineSymbolizer ahead of
// the fill; Mapnik polygons have no stroke of their own.
func (t *Translator) translatePolygon(s sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	polygon := s.(*sld.PolygonSymbolizer)

	fill := mapnik.NewPolygonSymbolizer()
	if polygon.Fill != nil {
		for _, p := range polygon.Fill.Parameters() {
			v := p.String()
			switch p.Name {
			case "fill":
				c, err := parseColor(p.Name, v)
				if err != nil {
					return nil, err
				}
				fill.Fill = c
			case "fill-opacity":
				f, err := parseFloat(p.Name, v)
				if err != nil {
					return nil, err
				}
				fill.Opacity = f
			default:
				return nil, &UnhandledParameterError{Context: "Fill", Name: p.Name}
			}
		}
	}

	if polygon.Stroke == nil {
		return []mapnik.Symbolizer{fill}, nil
	}
	stroke, err := buildStroke(polygon.Stroke.Parameters())
	if err != nil {
		return nil, err
	}
	return []mapnik.Symbolizer{mapnik.NewLineSymbolizer(stroke), fill}, nil
}

// translatePoint emits a default marker. Graphics are not translated.
func (t *Translator) translatePoint(sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	return []mapnik.Symbolizer{&mapnik.PointSymbolizer{}}, nil
}

func (t *Translator) translateText(s sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	text := s.(*sld.TextSymbolizer)

	label, err := labelProperty(text.Label)
	if err != nil {
		return nil, err
	}

	face := t.opts.DefaultFont
	size := t.opts.DefaultFontSize
	if text.Font != nil {
		for _, p := range text.Font.Parameters() {
			v := p.String()
			switch p.Name {
			case "font-family":
				face = v
			case "font-size":
				f, err := parseFloat(p.Name, v)
				if err != nil {
					return nil, err
				}
				size = int(f)
			default:
				t.logger.Debug("ignoring font parameter", "name", p.Name)
			}
		}
	}

	fill := mapnik.Black
	if text.Fill != nil {
		if fill, err = fillColor(text.Fill, fill); err != nil {
			return nil, err
		}
	}

	sym := mapnik.NewTextSymbolizer(mapnik.Expression("["+label+"]"), face, size, fill)

	if lp := text.LabelPlacement; lp != nil && lp.LinePlacement != nil {
		sym.Placement = mapnik.LinePlacement
	}

	if halo := text.Halo; halo != nil {
		if halo.Radius != nil {
			r, err := parseFloat("Halo/Radius", halo.Radius.String())
			if err != nil {
				return nil, err
			}
			sym.HaloRadius = r
		}
		if halo.Fill != nil {
			if sym.HaloFill, err = fillColor(halo.Fill, sym.HaloFill); err != nil {
				return nil, err
			}
		}
	}

	return []mapnik.Symbolizer{sym}, nil
}

// labelProperty returns the attribute a label shows: the nested
// PropertyName, else the first shell-style token of the label text.
func labelProperty(label *sld.Label) (string, error) {
	if label == nil {
		return "", &MissingLabelError{Reason: "no Label element"}
	}
	if label.PropertyName != nil {
		if name := strings.TrimSpace(*label.PropertyName); name != "" {
			return name, nil
		}
	}

	tokens, err := shlex.Split(label.Text)
	if err != nil {
		return "", &ValueError{Field: "Label", Value: strings.TrimSpace(label.Text), Err: err}
	}
	if len(tokens) == 0 {
		return "", &MissingLabelError{Reason: "empty Label"}
	}
	return tokens[0], nil
}

// fillColor returns the fill parameter of f, or def. Other parameters are
// ignored.
func fillColor(f *sld.Fill, def mapnik.Color) (mapnik.Color, error) {
	c := def
	for _, p := range f.Parameters() {
		if p.Name != "fill" {
			continue
		}
		parsed, err := parseColor(p.Name, p.String())
		if err != nil {
			return mapnik.Color{}, err
		}
		c = parsed
	}
	return c, nil
}

var colorMapModes = map[string]mapnik.ColorizerMode{
	"ramp":      mapnik.ColorizerLinear,
	"intervals": mapnik.ColorizerDiscrete,
	"values":    mapnik.ColorizerExact,
}

func (t *Translator) translateRaster(s sld.Symbolizer) ([]mapnik.Symbolizer, error) {
	raster := s.(*sld.RasterSymbolizer)
	if raster.ColorMap == nil {
		return nil, nil
	}

	typ := strings.TrimSpace(raster.ColorMap.Type)
	if typ == "" {
		typ = "ramp"
	}
	mode, ok := colorMapModes[typ]
	if !ok {
		return nil, &ColorMapTypeError{Type: raster.ColorMap.Type}
	}

	colorizer := mapnik.NewRasterColorizer(mode, mapnik.Transparent)
	for _, entry := range raster.ColorMap.Entries {
		stop, err := colorizerStop(entry)
		if err != nil {
			return nil, err
		}
		colorizer.AddStop(stop)
	}

	return []mapnik.Symbolizer{&mapnik.RasterSymbolizer{Colorizer: colorizer}}, nil
}

func colorizerStop(entry sld.ColorMapEntry) (mapnik.ColorizerStop, error) {
	c, err := parseColor("ColorMapEntry color", entry.Color)
	if err != nil {
		return mapnik.ColorizerStop{}, err
	}

	opacity := 1.0
	if strings.TrimSpace(entry.Opacity) != "" {
		if opacity, err = parseFloat("ColorMapEntry opacity", entry.Opacity); err != nil {
			return mapnik.ColorizerStop{}, err
		}
	}
	c.A = alpha(opacity)

	value, err := parseFloat("ColorMapEntry quantity", entry.Quantity)
	if err != nil {
		return mapnik.ColorizerStop{}, err
	}

	return mapnik.ColorizerStop{
		Value: value,
		Mode:  mapnik.ColorizerInherit,
		Color: c,
		Label: entry.Label,
	}, nil
}

// alpha scales an opacity in [0,1] to a truncated byte.
func alpha(opacity float64) uint8 {
	a := int(opacity * 255)
	switch {
	case a < 0:
		return 0
	case a > 255:
		return 255
	default:
		return uint8(a)
	}
}

// buildStroke converts Stroke parameters. Unknown names are fatal.
func buildStroke(params []sld.Parameter) (mapnik.Stroke, error) {
	stroke := mapnik.NewStroke()
	for _, p := range params {
		v := p.String()
		var err error
		switch p.Name {
		case "stroke":
			stroke.Color, err = parseColor(p.Name, v)
		case "stroke-width":
			stroke.Width, err = parseFloat(p.Name, v)
		case "stroke-opacity":
			stroke.Opacity, err = parseFloat(p.Name, v)
		case "stroke-dasharray":
			err = addDashes(&stroke, v)
		case "stroke-linecap":
			stroke.LineCap = lineCap(v)
		case "stroke-join", "stroke-linejoin":
			stroke.LineJoin = lineJoin(v)
		case "stroke-dashoffset":
			stroke.DashOffset, err = parseFloat(p.Name, v)
		default:
			err = &UnhandledParameterError{Context: "Stroke", Name: p.Name}
		}
		if err != nil {
			return mapnik.Stroke{}, err
		}
	}
	return stroke, nil
}

func addDashes(stroke *mapnik.Stroke, v string) error {
	fields := strings.Fields(v)
	if len(fields)%2 != 0 {
		return &DashArrayError{Value: v, Count: len(fields)}
	}
	values := make([]float64, len(fields))
	for i, field := range fields {
		f, err := parseFloat("stroke-dasharray", field)
		if err != nil {
			return err
		}
		values[i] = f
	}
	for i := 0; i < len(values); i += 2 {
		stroke.AddDash(values[i], values[i+1])
	}
	return nil
}

func lineCap(v string) mapnik.LineCap {
	switch v {
	case "square":
		return mapnik.SquareCap
	case "flat", "butt":
		return mapnik.ButtCap
	default:
		return mapnik.RoundCap
	}
}

func lineJoin(v string) mapnik.LineJoin {
	switch v {
	case "bevel":
		return mapnik.BevelJoin
	case "round":
		return mapnik.RoundJoin
	default:
		return mapnik.MiterJoin
	}
}

func parseColor(field, v string) (mapnik.Color, error) {
	c, err := mapnik.ParseColor(v)
	if err != nil {
		return mapnik.Color{}, &ValueError{Field: field, Value: v, Err: err}
	}
	return c, nil
}

func parseFloat(field, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &ValueError{Field: field, Value: v, Err: err}
	}
	return f, nil
}
