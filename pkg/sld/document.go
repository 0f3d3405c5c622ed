package sld

import (
	"encoding/xml"
	"strings"
)

// Document is the root StyledLayerDescriptor element.
type Document struct {
	XMLName     xml.Name
	Version     string  `xml:"version,attr"`
	NamedLayers []Layer `xml:"NamedLayer"`
	UserLayers  []Layer `xml:"UserLayer"`
}

// Layers returns the document layers in translation order: every
// NamedLayer first, then every UserLayer.
func (d *Document) Layers() []*Layer {
	layers := make([]*Layer, 0, len(d.NamedLayers)+len(d.UserLayers))
	for i := range d.NamedLayers {
		layers = append(layers, &d.NamedLayers[i])
	}
	for i := range d.UserLayers {
		layers = append(layers, &d.UserLayers[i])
	}
	return layers
}

// Layer is a NamedLayer or UserLayer element.
type Layer struct {
	XMLName    xml.Name
	Name       string      `xml:"Name"`
	UserStyles []UserStyle `xml:"UserStyle"`
}

// UserStyle groups the feature type styles of a layer.
type UserStyle struct {
	Name  string
	Title string

	// FeatureTypeStyles holds FeatureTypeStyle and CoverageStyle elements
	// in document order.
	FeatureTypeStyles []FeatureTypeStyle
}

// UnmarshalXML keeps FeatureTypeStyle and CoverageStyle children in the
// order they appear in the document.
func (u *UserStyle) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Name":
				if err := d.DecodeElement(&u.Name, &t); err != nil {
					return err
				}
			case "Title":
				if err := d.DecodeElement(&u.Title, &t); err != nil {
					return err
				}
			case "FeatureTypeStyle", "CoverageStyle":
				var fts FeatureTypeStyle
				if err := d.DecodeElement(&fts, &t); err != nil {
					return err
				}
				u.FeatureTypeStyles = append(u.FeatureTypeStyles, fts)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// FeatureTypeStyle is an ordered list of rules.
type FeatureTypeStyle struct {
	XMLName xml.Name
	Name    string `xml:"Name"`
	Title   string `xml:"Title"`
	Rules   []Rule `xml:"Rule"`
}

// Rule is a single SLD rule. Scale denominators are kept as their
// source text; the translator owns numeric conversion.
type Rule struct {
	Name     string
	Title    string
	Abstract string

	// Filter is set only for a Filter element in the OGC namespace.
	Filter     *Filter
	ElseFilter bool

	MinScaleDenominator *string
	MaxScaleDenominator *string

	Symbolizers []Symbolizer
}

// UnmarshalXML decodes rule children in document order so that the
// symbolizer sequence is preserved.
func (r *Rule) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.decodeChild(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (r *Rule) decodeChild(d *xml.Decoder, se xml.StartElement) error {
	switch {
	case se.Name.Local == "Name":
		return d.DecodeElement(&r.Name, &se)
	case se.Name.Local == "Title":
		return d.DecodeElement(&r.Title, &se)
	case se.Name.Local == "Abstract":
		return d.DecodeElement(&r.Abstract, &se)
	case se.Name.Local == "Filter" && se.Name.Space == NamespaceOGC:
		var f Filter
		if err := d.DecodeElement(&f, &se); err != nil {
			return err
		}
		r.Filter = &f
		return nil
	case se.Name.Local == "ElseFilter":
		r.ElseFilter = true
		return d.Skip()
	case se.Name.Local == "MinScaleDenominator":
		v, err := decodeText(d, se)
		if err != nil {
			return err
		}
		r.MinScaleDenominator = &v
		return nil
	case se.Name.Local == "MaxScaleDenominator":
		v, err := decodeText(d, se)
		if err != nil {
			return err
		}
		r.MaxScaleDenominator = &v
		return nil
	case strings.HasSuffix(se.Name.Local, "Symbolizer"):
		sym, err := decodeSymbolizer(d, se)
		if err != nil {
			return err
		}
		r.Symbolizers = append(r.Symbolizers, sym)
		return nil
	default:
		return d.Skip()
	}
}

func decodeText(d *xml.Decoder, se xml.StartElement) (string, error) {
	var s string
	if err := d.DecodeElement(&s, &se); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
