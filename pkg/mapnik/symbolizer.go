package mapnik

// Symbolizer is one rendering instruction of a rule. The implementations
// are LineSymbolizer, PolygonSymbolizer, PointSymbolizer, TextSymbolizer
// and RasterSymbolizer.
type Symbolizer interface {
	// Kind is the Mapnik element name, e.g. "LineSymbolizer".
	Kind() string
	symbolizer()
}

// LineCap is the stroke end style.
type LineCap int

const (
	ButtCap LineCap = iota
	SquareCap
	RoundCap
)

func (c LineCap) String() string {
	switch c {
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "butt"
	}
}

// LineJoin is the stroke corner style.
type LineJoin int

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

func (j LineJoin) String() string {
	switch j {
	case RoundJoin:
		return "round"
	case BevelJoin:
		return "bevel"
	default:
		return "miter"
	}
}

// Dash is one on/off pair of a dash pattern.
type Dash struct {
	Length float64
	Gap    float64
}

// Stroke describes how lines are drawn.
type Stroke struct {
	Color      Color
	Width      float64
	Opacity    float64
	LineCap    LineCap
	LineJoin   LineJoin
	Dashes     []Dash
	DashOffset float64
}

// NewStroke returns a stroke with Mapnik defaults: black, width 1,
// opaque, butt caps and miter joins.
func NewStroke() Stroke {
	return Stroke{
		Color:   Black,
		Width:   1,
		Opacity: 1,
	}
}

// AddDash appends an on/off pair to the dash pattern.
func (s *Stroke) AddDash(length, gap float64) {
	s.Dashes = append(s.Dashes, Dash{Length: length, Gap: gap})
}

// LineSymbolizer strokes line and polygon outlines.
type LineSymbolizer struct {
	Stroke Stroke
}

// NewLineSymbolizer wraps a stroke.
func NewLineSymbolizer(stroke Stroke) *LineSymbolizer {
	return &LineSymbolizer{Stroke: stroke}
}

// PolygonSymbolizer fills areas.
type PolygonSymbolizer struct {
	Fill    Color
	Opacity float64
}

// NewPolygonSymbolizer returns a gray, opaque fill.
func NewPolygonSymbolizer() *PolygonSymbolizer {
	return &PolygonSymbolizer{Fill: Gray, Opacity: 1}
}

// PointSymbolizer draws the default point marker.
type PointSymbolizer struct{}

// LabelPlacement positions text relative to the geometry.
type LabelPlacement int

const (
	PointPlacement LabelPlacement = iota
	LinePlacement
)

func (p LabelPlacement) String() string {
	if p == LinePlacement {
		return "line"
	}
	return "point"
}

// TextSymbolizer draws labels.
type TextSymbolizer struct {
	Name       Expression
	FaceName   string
	Size       int
	Fill       Color
	Placement  LabelPlacement
	HaloRadius float64
	HaloFill   Color
}

// NewTextSymbolizer returns a point-placed label without halo.
func NewTextSymbolizer(name Expression, faceName string, size int, fill Color) *TextSymbolizer {
	return &TextSymbolizer{
		Name:     name,
		FaceName: faceName,
		Size:     size,
		Fill:     fill,
		HaloFill: White,
	}
}

// ColorizerMode is the interpolation between colorizer stops.
type ColorizerMode int

const (
	ColorizerInherit ColorizerMode = iota
	ColorizerLinear
	ColorizerDiscrete
	ColorizerExact
)

func (m ColorizerMode) String() string {
	switch m {
	case ColorizerLinear:
		return "linear"
	case ColorizerDiscrete:
		return "discrete"
	case ColorizerExact:
		return "exact"
	default:
		return "inherit"
	}
}

// ColorizerStop maps a raster value to a color.
type ColorizerStop struct {
	Value float64
	Mode  ColorizerMode
	Color Color
	Label string
}

// RasterColorizer maps raster values to colors.
type RasterColorizer struct {
	DefaultMode  ColorizerMode
	DefaultColor Color
	Stops        []ColorizerStop
}

// NewRasterColorizer returns a colorizer without stops.
func NewRasterColorizer(mode ColorizerMode, defaultColor Color) *RasterColorizer {
	return &RasterColorizer{DefaultMode: mode, DefaultColor: defaultColor}
}

// AddStop appends a stop; stops keep insertion order.
func (c *RasterColorizer) AddStop(stop ColorizerStop) {
	c.Stops = append(c.Stops, stop)
}

// RasterSymbolizer renders raster layers.
type RasterSymbolizer struct {
	Colorizer *RasterColorizer
}

func (*LineSymbolizer) Kind() string    { return "LineSymbolizer" }
func (*PolygonSymbolizer) Kind() string { return "PolygonSymbolizer" }
func (*PointSymbolizer) Kind() string   { return "PointSymbolizer" }
func (*TextSymbolizer) Kind() string    { return "TextSymbolizer" }
func (*RasterSymbolizer) Kind() string  { return "RasterSymbolizer" }

func (*LineSymbolizer) symbolizer()    {}
func (*PolygonSymbolizer) symbolizer() {}
func (*PointSymbolizer) symbolizer()   {}
func (*TextSymbolizer) symbolizer()    {}
func (*RasterSymbolizer) symbolizer()  {}
