package mapnik

// DefaultSRS is the spatial reference of a new Map.
const DefaultSRS = "+proj=longlat +ellps=WGS84 +datum=WGS84 +no_defs"

// Expression is a compiled Mapnik filter or label expression.
type Expression string

// Rule selects features with a filter and renders them with its
// symbolizers. A rule has either a filter or the else flag, never both.
type Rule struct {
	Name string

	// MinScale and MaxScale bound the scale denominators at which the
	// rule is active. Nil means unbounded.
	MinScale *float64
	MaxScale *float64

	Symbolizers []Symbolizer

	filter     Expression
	elseFilter bool
}

// SetFilter sets the filter expression and clears the else flag.
func (r *Rule) SetFilter(expr Expression) {
	r.filter = expr
	r.elseFilter = false
}

// SetElse marks the rule as a catch-all else rule. Setting it clears any
// filter.
func (r *Rule) SetElse(on bool) {
	r.elseFilter = on
	if on {
		r.filter = ""
	}
}

// Filter returns the filter expression and whether one is set.
func (r *Rule) Filter() (Expression, bool) {
	return r.filter, r.filter != ""
}

// IsElse reports whether the rule is an else rule.
func (r *Rule) IsElse() bool {
	return r.elseFilter
}

// Style is an ordered list of rules.
type Style struct {
	Rules []*Rule
}

// NamedStyle is a style registration on a map.
type NamedStyle struct {
	Name  string
	Style *Style
}

// Parameter is a datasource parameter.
type Parameter struct {
	Name  string
	Value string
}

// Datasource describes where a layer reads its features from.
type Datasource struct {
	Parameters []Parameter
}

// Get returns the value of the named parameter.
func (d *Datasource) Get(name string) (string, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Layer binds styles to a datasource.
type Layer struct {
	Name       string
	SRS        string
	StyleNames []string
	Datasource *Datasource
}

// NewLayer returns a layer in the default SRS.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, SRS: DefaultSRS}
}

// Map is the root of a Mapnik style document.
type Map struct {
	SRS    string
	Layers []*Layer

	// Styles holds registrations in insertion order. Names are not
	// required to be unique.
	Styles []NamedStyle
}

// NewMap returns an empty map in the default SRS.
func NewMap() *Map {
	return &Map{SRS: DefaultSRS}
}

// AppendStyle registers a style. It reports whether a style with the same
// name was already registered; both registrations are kept.
func (m *Map) AppendStyle(name string, style *Style) bool {
	duplicate := m.FindStyle(name) != nil
	m.Styles = append(m.Styles, NamedStyle{Name: name, Style: style})
	return duplicate
}

// FindStyle returns the first style registered under name, or nil.
func (m *Map) FindStyle(name string) *Style {
	for _, s := range m.Styles {
		if s.Name == name {
			return s.Style
		}
	}
	return nil
}

// AddLayer appends a layer.
func (m *Map) AddLayer(l *Layer) {
	m.Layers = append(m.Layers, l)
}
