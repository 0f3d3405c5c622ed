package mapnik

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type xmlMap struct {
	XMLName xml.Name   `xml:"Map"`
	SRS     string     `xml:"srs,attr"`
	Styles  []xmlStyle `xml:"Style"`
	Layers  []xmlLayer `xml:"Layer"`
}

type xmlStyle struct {
	Name  string    `xml:"name,attr"`
	Rules []xmlRule `xml:"Rule"`
}

type xmlRule struct {
	Name        string    `xml:"name,attr,omitempty"`
	Filter      string    `xml:"Filter,omitempty"`
	ElseFilter  *struct{} `xml:"ElseFilter"`
	MinScale    string    `xml:"MinScaleDenominator,omitempty"`
	MaxScale    string    `xml:"MaxScaleDenominator,omitempty"`
	Symbolizers []any
}

type xmlLineSymbolizer struct {
	XMLName    xml.Name `xml:"LineSymbolizer"`
	Stroke     string   `xml:"stroke,attr,omitempty"`
	Width      string   `xml:"stroke-width,attr,omitempty"`
	Opacity    string   `xml:"stroke-opacity,attr,omitempty"`
	LineJoin   string   `xml:"stroke-linejoin,attr,omitempty"`
	LineCap    string   `xml:"stroke-linecap,attr,omitempty"`
	DashArray  string   `xml:"stroke-dasharray,attr,omitempty"`
	DashOffset string   `xml:"stroke-dashoffset,attr,omitempty"`
}

type xmlPolygonSymbolizer struct {
	XMLName xml.Name `xml:"PolygonSymbolizer"`
	Fill    string   `xml:"fill,attr,omitempty"`
	Opacity string   `xml:"fill-opacity,attr,omitempty"`
}

type xmlPointSymbolizer struct {
	XMLName xml.Name `xml:"PointSymbolizer"`
}

type xmlTextSymbolizer struct {
	XMLName    xml.Name `xml:"TextSymbolizer"`
	Name       string   `xml:"name,attr"`
	FaceName   string   `xml:"face-name,attr"`
	Size       int      `xml:"size,attr"`
	Fill       string   `xml:"fill,attr"`
	Placement  string   `xml:"placement,attr,omitempty"`
	HaloFill   string   `xml:"halo-fill,attr,omitempty"`
	HaloRadius string   `xml:"halo-radius,attr,omitempty"`
}

type xmlRasterSymbolizer struct {
	XMLName   xml.Name      `xml:"RasterSymbolizer"`
	Colorizer *xmlColorizer `xml:"RasterColorizer"`
}

type xmlColorizer struct {
	DefaultMode  string    `xml:"default-mode,attr"`
	DefaultColor string    `xml:"default-color,attr"`
	Stops        []xmlStop `xml:"stop"`
}

type xmlStop struct {
	Value string `xml:"value,attr"`
	Color string `xml:"color,attr"`
	Mode  string `xml:"mode,attr,omitempty"`
	Label string `xml:"label,attr,omitempty"`
}

type xmlLayer struct {
	Name       string         `xml:"name,attr"`
	SRS        string         `xml:"srs,attr"`
	StyleNames []string       `xml:"StyleName"`
	Datasource *xmlDatasource `xml:"Datasource"`
}

type xmlDatasource struct {
	Parameters []xmlParameter `xml:"Parameter"`
}

type xmlParameter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Marshal serializes the map as a Mapnik XML document. Attributes that
// equal Mapnik's defaults are omitted.
func Marshal(m *Map) ([]byte, error) {
	doc := xmlMap{SRS: m.SRS}

	for _, ns := range m.Styles {
		style := xmlStyle{Name: ns.Name}
		for _, r := range ns.Style.Rules {
			rule, err := marshalRule(r)
			if err != nil {
				return nil, fmt.Errorf("style %q: %w", ns.Name, err)
			}
			style.Rules = append(style.Rules, rule)
		}
		doc.Styles = append(doc.Styles, style)
	}

	for _, l := range m.Layers {
		layer := xmlLayer{Name: l.Name, SRS: l.SRS, StyleNames: l.StyleNames}
		if l.Datasource != nil {
			ds := &xmlDatasource{}
			for _, p := range l.Datasource.Parameters {
				ds.Parameters = append(ds.Parameters, xmlParameter(p))
			}
			layer.Datasource = ds
		}
		doc.Layers = append(doc.Layers, layer)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode map: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Write serializes the map to w.
func Write(w io.Writer, m *Map) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalRule(r *Rule) (xmlRule, error) {
	rule := xmlRule{Name: r.Name}
	if expr, ok := r.Filter(); ok {
		rule.Filter = string(expr)
	}
	if r.IsElse() {
		rule.ElseFilter = &struct{}{}
	}
	if r.MinScale != nil {
		rule.MinScale = formatFloat(*r.MinScale)
	}
	if r.MaxScale != nil {
		rule.MaxScale = formatFloat(*r.MaxScale)
	}

	for _, sym := range r.Symbolizers {
		x, err := marshalSymbolizer(sym)
		if err != nil {
			return xmlRule{}, err
		}
		rule.Symbolizers = append(rule.Symbolizers, x)
	}
	return rule, nil
}

func marshalSymbolizer(sym Symbolizer) (any, error) {
	switch s := sym.(type) {
	case *LineSymbolizer:
		return marshalStroke(s.Stroke), nil
	case *PolygonSymbolizer:
		x := xmlPolygonSymbolizer{}
		if s.Fill != Gray {
			x.Fill = s.Fill.String()
		}
		if s.Opacity != 1 {
			x.Opacity = formatFloat(s.Opacity)
		}
		return x, nil
	case *PointSymbolizer:
		return xmlPointSymbolizer{}, nil
	case *TextSymbolizer:
		x := xmlTextSymbolizer{
			Name:     string(s.Name),
			FaceName: s.FaceName,
			Size:     s.Size,
			Fill:     s.Fill.String(),
		}
		if s.Placement != PointPlacement {
			x.Placement = s.Placement.String()
		}
		if s.HaloFill != White {
			x.HaloFill = s.HaloFill.String()
		}
		if s.HaloRadius != 0 {
			x.HaloRadius = formatFloat(s.HaloRadius)
		}
		return x, nil
	case *RasterSymbolizer:
		x := xmlRasterSymbolizer{}
		if c := s.Colorizer; c != nil {
			xc := &xmlColorizer{
				DefaultMode:  c.DefaultMode.String(),
				DefaultColor: c.DefaultColor.String(),
			}
			for _, stop := range c.Stops {
				xs := xmlStop{
					Value: formatFloat(stop.Value),
					Color: stop.Color.String(),
					Label: stop.Label,
				}
				if stop.Mode != ColorizerInherit {
					xs.Mode = stop.Mode.String()
				}
				xc.Stops = append(xc.Stops, xs)
			}
			x.Colorizer = xc
		}
		return x, nil
	default:
		return nil, fmt.Errorf("cannot serialize symbolizer %T", sym)
	}
}

func marshalStroke(s Stroke) xmlLineSymbolizer {
	x := xmlLineSymbolizer{}
	if s.Color != Black {
		x.Stroke = s.Color.String()
	}
	if s.Width != 1 {
		x.Width = formatFloat(s.Width)
	}
	if s.Opacity != 1 {
		x.Opacity = formatFloat(s.Opacity)
	}
	if s.LineJoin != MiterJoin {
		x.LineJoin = s.LineJoin.String()
	}
	if s.LineCap != ButtCap {
		x.LineCap = s.LineCap.String()
	}
	if len(s.Dashes) > 0 {
		parts := make([]string, 0, 2*len(s.Dashes))
		for _, d := range s.Dashes {
			parts = append(parts, formatFloat(d.Length), formatFloat(d.Gap))
		}
		x.DashArray = strings.Join(parts, ", ")
	}
	if s.DashOffset != 0 {
		x.DashOffset = formatFloat(s.DashOffset)
	}
	return x
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
