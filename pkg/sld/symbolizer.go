package sld

import (
	"encoding/xml"
	"strings"
)

// Symbolizer is a decoded symbolizer element.
type Symbolizer interface {
	Kind() SymbolizerKind
	Tag() xml.Name
}

// Value is element content that may be given either as character data
// or as a nested ogc:Literal.
type Value struct {
	Text    string  `xml:",chardata"`
	Literal *string `xml:"Literal"`
}

// String returns the trimmed value, preferring character data.
func (v Value) String() string {
	s := strings.TrimSpace(v.Text)
	if s == "" && v.Literal != nil {
		s = strings.TrimSpace(*v.Literal)
	}
	return s
}

// Parameter is a CssParameter (SLD 1.0) or SvgParameter (SE 1.1).
type Parameter struct {
	Name string `xml:"name,attr"`
	Value
}

// ParameterList collects the named parameters of a Stroke, Fill or Font.
type ParameterList struct {
	CSS []Parameter `xml:"CssParameter"`
	SVG []Parameter `xml:"SvgParameter"`
}

// Parameters returns CssParameters followed by SvgParameters.
func (l ParameterList) Parameters() []Parameter {
	params := make([]Parameter, 0, len(l.CSS)+len(l.SVG))
	params = append(params, l.CSS...)
	return append(params, l.SVG...)
}

// Stroke holds stroke parameters.
type Stroke struct {
	ParameterList
}

// Fill holds fill parameters.
type Fill struct {
	ParameterList
}

// Font holds font parameters.
type Font struct {
	ParameterList
}

// LineSymbolizer renders a stroke along a geometry.
type LineSymbolizer struct {
	XMLName xml.Name
	Stroke  *Stroke `xml:"Stroke"`
}

func (s *LineSymbolizer) Kind() SymbolizerKind { return SymbolizerLine }
func (s *LineSymbolizer) Tag() xml.Name        { return s.XMLName }

// PolygonSymbolizer renders an area fill with an optional border.
type PolygonSymbolizer struct {
	XMLName xml.Name
	Fill    *Fill   `xml:"Fill"`
	Stroke  *Stroke `xml:"Stroke"`
}

func (s *PolygonSymbolizer) Kind() SymbolizerKind { return SymbolizerPolygon }
func (s *PolygonSymbolizer) Tag() xml.Name        { return s.XMLName }

// PointSymbolizer marks a point. Its graphic is not decoded.
type PointSymbolizer struct {
	XMLName xml.Name
}

func (s *PointSymbolizer) Kind() SymbolizerKind { return SymbolizerPoint }
func (s *PointSymbolizer) Tag() xml.Name        { return s.XMLName }

// Label is the content of a TextSymbolizer Label element.
type Label struct {
	Text         string  `xml:",chardata"`
	PropertyName *string `xml:"PropertyName"`
}

// LabelPlacement selects point or line placement.
type LabelPlacement struct {
	PointPlacement *struct{} `xml:"PointPlacement"`
	LinePlacement  *struct{} `xml:"LinePlacement"`
}

// Halo surrounds label glyphs.
type Halo struct {
	Radius *Value `xml:"Radius"`
	Fill   *Fill  `xml:"Fill"`
}

// TextSymbolizer renders a label.
type TextSymbolizer struct {
	XMLName        xml.Name
	Label          *Label          `xml:"Label"`
	Font           *Font           `xml:"Font"`
	LabelPlacement *LabelPlacement `xml:"LabelPlacement"`
	Halo           *Halo           `xml:"Halo"`
	Fill           *Fill           `xml:"Fill"`
}

func (s *TextSymbolizer) Kind() SymbolizerKind { return SymbolizerText }
func (s *TextSymbolizer) Tag() xml.Name        { return s.XMLName }

// ColorMapEntry is one stop of a raster color map. Attributes are kept
// as text; empty means absent.
type ColorMapEntry struct {
	Color    string `xml:"color,attr"`
	Opacity  string `xml:"opacity,attr"`
	Quantity string `xml:"quantity,attr"`
	Label    string `xml:"label,attr"`
}

// ColorMap maps raster values to colors.
type ColorMap struct {
	Type    string          `xml:"type,attr"`
	Entries []ColorMapEntry `xml:"ColorMapEntry"`
}

// RasterSymbolizer renders coverage data through a color map.
type RasterSymbolizer struct {
	XMLName  xml.Name
	Opacity  *Value    `xml:"Opacity"`
	ColorMap *ColorMap `xml:"ColorMap"`
}

func (s *RasterSymbolizer) Kind() SymbolizerKind { return SymbolizerRaster }
func (s *RasterSymbolizer) Tag() xml.Name        { return s.XMLName }

// UnknownSymbolizer is any element ending in "Symbolizer" that the
// decoder does not recognise.
type UnknownSymbolizer struct {
	XMLName xml.Name
}

func (s *UnknownSymbolizer) Kind() SymbolizerKind { return SymbolizerUnknown }
func (s *UnknownSymbolizer) Tag() xml.Name        { return s.XMLName }

func decodeSymbolizer(d *xml.Decoder, se xml.StartElement) (Symbolizer, error) {
	var sym Symbolizer
	switch KindOf(se.Name) {
	case SymbolizerLine:
		sym = &LineSymbolizer{}
	case SymbolizerPolygon:
		sym = &PolygonSymbolizer{}
	case SymbolizerPoint:
		sym = &PointSymbolizer{}
	case SymbolizerText:
		sym = &TextSymbolizer{}
	case SymbolizerRaster:
		sym = &RasterSymbolizer{}
	default:
		return &UnknownSymbolizer{XMLName: se.Name}, d.Skip()
	}
	if err := d.DecodeElement(sym, &se); err != nil {
		return nil, err
	}
	return sym, nil
}
