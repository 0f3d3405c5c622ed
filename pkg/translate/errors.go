package translate

import (
	"errors"
	"fmt"
)

// ErrEmptyFilter is returned for an ogc:Filter without a predicate.
var ErrEmptyFilter = errors.New("filter has no predicate")

// UnsupportedFilterError is returned for filter elements outside the
// supported grammar.
type UnsupportedFilterError struct {
	// Element is the local name of the offending element.
	Element string

	// Fragment is the element rendered back as XML.
	Fragment string
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("unsupported filter element %s: %s", e.Element, e.Fragment)
}

// OperandCountError is returned for a binary comparison without exactly
// two operands.
type OperandCountError struct {
	Operator string
	Count    int
}

func (e *OperandCountError) Error() string {
	return fmt.Sprintf("%s requires 2 operands, got %d", e.Operator, e.Count)
}

// DashArrayError is returned for a stroke-dasharray with an odd number
// of values.
type DashArrayError struct {
	Value string
	Count int
}

func (e *DashArrayError) Error() string {
	return fmt.Sprintf("stroke-dasharray %q has %d values, want an even number", e.Value, e.Count)
}

// UnhandledParameterError is returned for a CssParameter or SvgParameter
// name that the translator does not know.
type UnhandledParameterError struct {
	// Context is the enclosing element, e.g. "Stroke" or "Fill".
	Context string
	Name    string
}

func (e *UnhandledParameterError) Error() string {
	return fmt.Sprintf("unhandled %s parameter %q", e.Context, e.Name)
}

// ColorMapTypeError is returned for a ColorMap type other than ramp,
// intervals or values.
type ColorMapTypeError struct {
	Type string
}

func (e *ColorMapTypeError) Error() string {
	return fmt.Sprintf("unknown ColorMap type %q: want ramp, intervals or values", e.Type)
}

// MissingLabelError is returned for a TextSymbolizer without a usable
// Label.
type MissingLabelError struct {
	Reason string
}

func (e *MissingLabelError) Error() string {
	return "TextSymbolizer label: " + e.Reason
}

// ValueError is returned when a parameter or attribute value cannot be
// parsed.
type ValueError struct {
	// Field names the parameter or attribute, e.g. "stroke-width".
	Field string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
