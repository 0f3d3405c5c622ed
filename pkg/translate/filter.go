package translate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
)

// FilterOptions controls expression formatting.
type FilterOptions struct {
	// LegacyBetweenSpacing joins the two halves of a PropertyIsBetween
	// with "and " instead of " and ", e.g. "[a] > 1and [a] < 2".
	LegacyBetweenSpacing bool
}

var comparisonOperators = map[sld.ComparisonOp]string{
	sld.OpEqualTo:              "=",
	sld.OpNotEqualTo:           "!=",
	sld.OpLessThan:             "<",
	sld.OpGreaterThan:          ">",
	sld.OpLessThanOrEqualTo:    "<=",
	sld.OpGreaterThanOrEqualTo: ">=",
}

// CompileFilter compiles a filter predicate into a Mapnik expression.
func CompileFilter(p sld.Predicate, opts FilterOptions) (mapnik.Expression, error) {
	if p == nil {
		return "", ErrEmptyFilter
	}
	s, err := compilePredicate(p, opts)
	if err != nil {
		return "", err
	}
	return mapnik.Expression(s), nil
}

func compilePredicate(p sld.Predicate, opts FilterOptions) (string, error) {
	switch p := p.(type) {
	case *sld.And:
		return compileLogical(p.Children, " and ", opts)
	case *sld.Or:
		return compileLogical(p.Children, " or ", opts)
	case *sld.Comparison:
		op, ok := comparisonOperators[p.Op]
		if !ok {
			return "", fmt.Errorf("unknown comparison operator %v", p.Op)
		}
		return compileBinary(p.Op.String(), op, p.Operands)
	case *sld.Between:
		lower, err := compileBinary("PropertyIsBetween", ">", []sld.Operand{p.Expression, p.Lower})
		if err != nil {
			return "", err
		}
		upper, err := compileBinary("PropertyIsBetween", "<", []sld.Operand{p.Expression, p.Upper})
		if err != nil {
			return "", err
		}
		if opts.LegacyBetweenSpacing {
			return lower + "and " + upper, nil
		}
		return lower + " and " + upper, nil
	case *sld.UnsupportedPredicate:
		return "", &UnsupportedFilterError{Element: p.Name.Local, Fragment: p.Fragment}
	default:
		return "", fmt.Errorf("unknown predicate %T", p)
	}
}

// compileLogical joins the children with sep. A child that is itself a
// logical operator is parenthesised so the nesting survives re-parsing.
func compileLogical(children []sld.Predicate, sep string, opts FilterOptions) (string, error) {
	if len(children) == 0 {
		return "", ErrEmptyFilter
	}

	parts := make([]string, 0, len(children))
	for _, child := range children {
		s, err := compilePredicate(child, opts)
		if err != nil {
			return "", err
		}
		switch child.(type) {
		case *sld.And, *sld.Or:
			if len(children) > 1 {
				s = "(" + s + ")"
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func compileBinary(element, op string, operands []sld.Operand) (string, error) {
	if len(operands) != 2 {
		return "", &OperandCountError{Operator: element, Count: len(operands)}
	}
	left, err := compileOperand(operands[0])
	if err != nil {
		return "", err
	}
	right, err := compileOperand(operands[1])
	if err != nil {
		return "", err
	}
	return left + " " + op + " " + right, nil
}

func compileOperand(o sld.Operand) (string, error) {
	switch o := o.(type) {
	case *sld.PropertyName:
		return "[" + o.Name + "]", nil
	case *sld.Literal:
		return compileLiteral(o.Value), nil
	case *sld.UnsupportedOperand:
		return "", &UnsupportedFilterError{Element: o.Name.Local, Fragment: o.Fragment}
	default:
		return "", fmt.Errorf("unknown operand %T", o)
	}
}

// compileLiteral emits numbers bare and everything else single-quoted.
// Values with a leading "0" are quoted so codes such as "007" stay text.
func compileLiteral(v string) string {
	if isNumber(v) {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}

func isNumber(v string) bool {
	if strings.HasPrefix(v, "0") {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
