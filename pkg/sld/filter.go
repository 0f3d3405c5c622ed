package sld

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Filter is an ogc:Filter element. Only its first child predicate is
// significant.
type Filter struct {
	Predicate Predicate
}

// UnmarshalXML decodes the first child element into a Predicate and
// skips the rest.
func (f *Filter) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if f.Predicate != nil {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var n node
			if err := d.DecodeElement(&n, &t); err != nil {
				return err
			}
			f.Predicate = predicateFromNode(&n)
		case xml.EndElement:
			return nil
		}
	}
}

// Predicate is a node of a Filter-Encoding boolean expression. The set of
// implementations is closed: And, Or, Comparison, Between and
// UnsupportedPredicate.
type Predicate interface {
	isPredicate()
}

// And is the conjunction of its children.
type And struct {
	Children []Predicate
}

// Or is the disjunction of its children.
type Or struct {
	Children []Predicate
}

// ComparisonOp enumerates the binary comparison elements.
type ComparisonOp int

const (
	OpEqualTo ComparisonOp = iota
	OpNotEqualTo
	OpLessThan
	OpGreaterThan
	OpLessThanOrEqualTo
	OpGreaterThanOrEqualTo
)

var comparisonElements = map[string]ComparisonOp{
	"PropertyIsEqualTo":              OpEqualTo,
	"PropertyIsNotEqualTo":           OpNotEqualTo,
	"PropertyIsLessThan":             OpLessThan,
	"PropertyIsGreaterThan":          OpGreaterThan,
	"PropertyIsLessThanOrEqualTo":    OpLessThanOrEqualTo,
	"PropertyIsGreaterThanOrEqualTo": OpGreaterThanOrEqualTo,
}

// String returns the element name of the comparison.
func (op ComparisonOp) String() string {
	for name, candidate := range comparisonElements {
		if candidate == op {
			return name
		}
	}
	return fmt.Sprintf("ComparisonOp(%d)", int(op))
}

// Comparison is a binary comparison. Operands holds every child
// element, so a malformed comparison may carry more or fewer than two.
type Comparison struct {
	Op       ComparisonOp
	Operands []Operand
}

// Between is PropertyIsBetween.
type Between struct {
	Expression Operand
	Lower      Operand
	Upper      Operand
}

// UnsupportedPredicate is an element outside the supported grammar.
type UnsupportedPredicate struct {
	Name     xml.Name
	Fragment string
}

func (*And) isPredicate()                  {}
func (*Or) isPredicate()                   {}
func (*Comparison) isPredicate()           {}
func (*Between) isPredicate()              {}
func (*UnsupportedPredicate) isPredicate() {}

// Operand is a comparison argument: Literal, PropertyName or
// UnsupportedOperand.
type Operand interface {
	isOperand()
}

// Literal is an ogc:Literal value with surrounding whitespace removed.
type Literal struct {
	Value string
}

// PropertyName references a feature attribute.
type PropertyName struct {
	Name string
}

// UnsupportedOperand is an operand element other than Literal or
// PropertyName, e.g. ogc:Function or ogc:Add.
type UnsupportedOperand struct {
	Name     xml.Name
	Fragment string
}

func (*Literal) isOperand()            {}
func (*PropertyName) isOperand()       {}
func (*UnsupportedOperand) isOperand() {}

// node is a generic element used while converting filter XML into
// predicates.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Inner   string     `xml:",innerxml"`
	Nodes   []node     `xml:",any"`
}

// fragment renders the node back into an approximate XML snippet for
// error messages.
func (n *node) fragment() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.XMLName.Local)
	for _, attr := range n.Attrs {
		sb.WriteString(fmt.Sprintf(" %s=%q", attr.Name.Local, attr.Value))
	}
	sb.WriteString(">")
	sb.WriteString(strings.TrimSpace(n.Inner))
	sb.WriteString("</")
	sb.WriteString(n.XMLName.Local)
	sb.WriteString(">")
	return sb.String()
}

func predicateFromNode(n *node) Predicate {
	local := n.XMLName.Local
	switch local {
	case "And":
		return &And{Children: childPredicates(n)}
	case "Or":
		return &Or{Children: childPredicates(n)}
	case "PropertyIsBetween":
		return betweenFromNode(n)
	}
	if op, ok := comparisonElements[local]; ok {
		operands := make([]Operand, 0, len(n.Nodes))
		for i := range n.Nodes {
			operands = append(operands, operandFromNode(&n.Nodes[i]))
		}
		return &Comparison{Op: op, Operands: operands}
	}
	return &UnsupportedPredicate{Name: n.XMLName, Fragment: n.fragment()}
}

func childPredicates(n *node) []Predicate {
	children := make([]Predicate, 0, len(n.Nodes))
	for i := range n.Nodes {
		children = append(children, predicateFromNode(&n.Nodes[i]))
	}
	return children
}

func betweenFromNode(n *node) Predicate {
	b := &Between{}
	for i := range n.Nodes {
		child := &n.Nodes[i]
		switch child.XMLName.Local {
		case "LowerBoundary":
			if len(child.Nodes) > 0 {
				b.Lower = operandFromNode(&child.Nodes[0])
			}
		case "UpperBoundary":
			if len(child.Nodes) > 0 {
				b.Upper = operandFromNode(&child.Nodes[0])
			}
		default:
			if b.Expression == nil {
				b.Expression = operandFromNode(child)
			}
		}
	}
	if b.Expression == nil || b.Lower == nil || b.Upper == nil {
		return &UnsupportedPredicate{Name: n.XMLName, Fragment: n.fragment()}
	}
	return b
}

func operandFromNode(n *node) Operand {
	switch n.XMLName.Local {
	case "Literal":
		return &Literal{Value: strings.TrimSpace(n.Text)}
	case "PropertyName":
		return &PropertyName{Name: strings.TrimSpace(n.Text)}
	default:
		return &UnsupportedOperand{Name: n.XMLName, Fragment: n.fragment()}
	}
}
