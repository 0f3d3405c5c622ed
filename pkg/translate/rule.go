package translate

import (
	"fmt"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
	"mercator-hq/sld2mapnik/pkg/telemetry/metrics"
)

// TranslateRule converts an SLD rule. A filter takes precedence over an
// ElseFilter in the same rule.
func (t *Translator) TranslateRule(r *sld.Rule) (*mapnik.Rule, error) {
	rule := &mapnik.Rule{Name: r.Name}

	selector := metrics.SelectorAll
	switch {
	case r.Filter != nil:
		expr, err := CompileFilter(r.Filter.Predicate, t.filterOptions())
		if err != nil {
			return nil, fmt.Errorf("rule %q: filter: %w", r.Name, err)
		}
		rule.SetFilter(expr)
		selector = metrics.SelectorFilter
	case r.ElseFilter:
		rule.SetElse(true)
		selector = metrics.SelectorElse
	}

	var err error
	if rule.MaxScale, err = scaleDenominator("MaxScaleDenominator", r.MaxScaleDenominator); err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	if rule.MinScale, err = scaleDenominator("MinScaleDenominator", r.MinScaleDenominator); err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Name, err)
	}

	for _, s := range r.Symbolizers {
		syms, err := t.TranslateSymbolizer(s)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		for _, sym := range syms {
			t.metrics.RecordSymbolizer(sym.Kind())
		}
		rule.Symbolizers = append(rule.Symbolizers, syms...)
	}

	t.metrics.RecordRule(selector)
	return rule, nil
}

func scaleDenominator(field string, v *string) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := parseFloat(field, *v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
