package translate

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
)

func prop(name string) sld.Operand { return &sld.PropertyName{Name: name} }
func lit(v string) sld.Operand     { return &sld.Literal{Value: v} }

func cmp(op sld.ComparisonOp, l, r sld.Operand) sld.Predicate {
	return &sld.Comparison{Op: op, Operands: []sld.Operand{l, r}}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name string
		pred sld.Predicate
		want mapnik.Expression
	}{
		{"greater than", cmp(sld.OpGreaterThan, prop("pop"), lit("1000000")), "[pop] > 1000000"},
		{"less than", cmp(sld.OpLessThan, prop("area"), lit("2.5")), "[area] < 2.5"},
		{"equal string", cmp(sld.OpEqualTo, prop("type"), lit("road")), "[type] = 'road'"},
		{"not equal", cmp(sld.OpNotEqualTo, prop("type"), lit("rail")), "[type] != 'rail'"},
		{"greater or equal", cmp(sld.OpGreaterThanOrEqualTo, prop("lanes"), lit("2")), "[lanes] >= 2"},
		{"less or equal", cmp(sld.OpLessThanOrEqualTo, prop("lanes"), lit("4")), "[lanes] <= 4"},
		{"property on both sides", cmp(sld.OpEqualTo, prop("a"), prop("b")), "[a] = [b]"},
		{
			"and keeps order",
			&sld.And{Children: []sld.Predicate{
				cmp(sld.OpGreaterThan, prop("a"), lit("1")),
				cmp(sld.OpLessThan, prop("b"), lit("2")),
				cmp(sld.OpEqualTo, prop("c"), lit("x")),
			}},
			"[a] > 1 and [b] < 2 and [c] = 'x'",
		},
		{
			"or",
			&sld.Or{Children: []sld.Predicate{
				cmp(sld.OpEqualTo, prop("kind"), lit("river")),
				cmp(sld.OpEqualTo, prop("kind"), lit("canal")),
			}},
			"[kind] = 'river' or [kind] = 'canal'",
		},
		{
			"nested logic is parenthesised",
			&sld.And{Children: []sld.Predicate{
				&sld.Or{Children: []sld.Predicate{
					cmp(sld.OpEqualTo, prop("a"), lit("1")),
					cmp(sld.OpEqualTo, prop("a"), lit("2")),
				}},
				cmp(sld.OpGreaterThan, prop("b"), lit("3")),
			}},
			"([a] = 1 or [a] = 2) and [b] > 3",
		},
		{
			"single nested child is not parenthesised",
			&sld.Or{Children: []sld.Predicate{
				&sld.And{Children: []sld.Predicate{
					cmp(sld.OpEqualTo, prop("a"), lit("1")),
					cmp(sld.OpEqualTo, prop("b"), lit("2")),
				}},
			}},
			"[a] = 1 and [b] = 2",
		},
		{
			"between",
			&sld.Between{Expression: prop("area"), Lower: lit("10"), Upper: lit("20")},
			"[area] > 10 and [area] < 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileFilter(tt.pred, FilterOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileFilter_LegacyBetweenSpacing(t *testing.T) {
	pred := &sld.Between{Expression: prop("area"), Lower: lit("10"), Upper: lit("20")}

	got, err := CompileFilter(pred, FilterOptions{LegacyBetweenSpacing: true})
	require.NoError(t, err)
	assert.Equal(t, mapnik.Expression("[area] > 10and [area] < 20"), got)
}

func TestCompileLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"-3.5", "-3.5"},
		{"1e3", "1e3"},
		{"007", "'007'"},
		{"0.5", "'0.5'"},
		{"road", "'road'"},
		{"", "''"},
		{"O'Brien", `'O\'Brien'`},
		{"Inf", "'Inf'"},
		{"NaN", "'NaN'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, compileLiteral(tt.in))
		})
	}
}

func TestCompileFilter_Errors(t *testing.T) {
	t.Run("nil predicate", func(t *testing.T) {
		_, err := CompileFilter(nil, FilterOptions{})
		assert.ErrorIs(t, err, ErrEmptyFilter)
	})

	t.Run("empty and", func(t *testing.T) {
		_, err := CompileFilter(&sld.And{}, FilterOptions{})
		assert.ErrorIs(t, err, ErrEmptyFilter)
	})

	t.Run("operand count", func(t *testing.T) {
		pred := &sld.Comparison{Op: sld.OpEqualTo, Operands: []sld.Operand{prop("a")}}
		_, err := CompileFilter(pred, FilterOptions{})

		var countErr *OperandCountError
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, "PropertyIsEqualTo", countErr.Operator)
		assert.Equal(t, 1, countErr.Count)
	})

	t.Run("unsupported predicate", func(t *testing.T) {
		pred := &sld.And{Children: []sld.Predicate{
			cmp(sld.OpEqualTo, prop("a"), lit("1")),
			&sld.UnsupportedPredicate{
				Name:     xml.Name{Space: sld.NamespaceOGC, Local: "PropertyIsLike"},
				Fragment: "<PropertyIsLike></PropertyIsLike>",
			},
		}}
		_, err := CompileFilter(pred, FilterOptions{})

		var unsupported *UnsupportedFilterError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "PropertyIsLike", unsupported.Element)
		assert.Contains(t, err.Error(), "<PropertyIsLike>")
	})

	t.Run("unsupported operand", func(t *testing.T) {
		pred := cmp(sld.OpEqualTo, prop("a"), &sld.UnsupportedOperand{
			Name:     xml.Name{Local: "Function"},
			Fragment: "<Function></Function>",
		})
		_, err := CompileFilter(pred, FilterOptions{})

		var unsupported *UnsupportedFilterError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "Function", unsupported.Element)
	})
}

func TestCompileFilter_FromDocument(t *testing.T) {
	rule := translateRule(t, `
<Rule>
  <ogc:Filter>
    <ogc:PropertyIsBetween>
      <ogc:PropertyName>area</ogc:PropertyName>
      <ogc:LowerBoundary><ogc:Literal>10</ogc:Literal></ogc:LowerBoundary>
      <ogc:UpperBoundary><ogc:Literal>20</ogc:Literal></ogc:UpperBoundary>
    </ogc:PropertyIsBetween>
  </ogc:Filter>
  <LineSymbolizer/>
</Rule>`)

	expr, ok := rule.Filter()
	require.True(t, ok)
	assert.Contains(t, string(expr), "[area] > 10")
	assert.Contains(t, string(expr), "[area] < 20")
}
