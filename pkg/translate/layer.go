package translate

import (
	"fmt"
	"strings"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
)

// DefaultLayerName names layers without a Name element.
const DefaultLayerName = "Layer"

// StyleIndex numbers styles across a whole document. The zero value
// starts at 0.
type StyleIndex struct {
	n int
}

// Next returns the current index and advances it.
func (i *StyleIndex) Next() int {
	n := i.n
	i.n++
	return n
}

// TranslateLayer converts an SLD layer and its styles. Every
// FeatureTypeStyle and CoverageStyle consumes one index value, whether or
// not it carries its own name; unnamed styles are called
// "<layer> <index>".
func (t *Translator) TranslateLayer(l *sld.Layer, idx *StyleIndex) (*mapnik.Layer, []mapnik.NamedStyle, error) {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		name = DefaultLayerName
	}
	layer := mapnik.NewLayer(name)

	var styles []mapnik.NamedStyle
	for _, us := range l.UserStyles {
		for i := range us.FeatureTypeStyles {
			fts := &us.FeatureTypeStyles[i]

			n := idx.Next()
			styleName := strings.TrimSpace(fts.Name)
			if styleName == "" {
				styleName = fmt.Sprintf("%s %d", name, n)
			}

			style := &mapnik.Style{}
			for j := range fts.Rules {
				rule, err := t.TranslateRule(&fts.Rules[j])
				if err != nil {
					return nil, nil, fmt.Errorf("layer %q: style %q: %w", name, styleName, err)
				}
				style.Rules = append(style.Rules, rule)
			}

			styles = append(styles, mapnik.NamedStyle{Name: styleName, Style: style})
			layer.StyleNames = append(layer.StyleNames, styleName)
		}
	}

	return layer, styles, nil
}
