package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/sld2mapnik/pkg/cli"
	"mercator-hq/sld2mapnik/pkg/mapnik"
)

var inspectFlags struct {
	conversionFlags
	format string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <sld> [datasource]",
	Short: "Summarize the translation of an SLD document",
	Long: `Translate an SLD document and print a summary of the resulting layers,
styles and rules, including every compiled filter expression, instead of
the Mapnik XML.

Examples:
  sld2mapnik inspect roads.sld
  sld2mapnik inspect roads.sld --format json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectFlags.register(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFlags.format, "format", "f", "text", "output format (text, json)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(inspectFlags.format)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, &inspectFlags.conversionFlags)
	if err != nil {
		return err
	}
	defer a.flushMetrics()

	var positional string
	if len(args) > 1 {
		positional = args[1]
	}
	convertCfg, err := inspectFlags.convertConfig(cmd, a.cfg, positional)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return cli.NewCommandError("inspect", err)
		}
		defer f.Close()
		in = f
	}

	m, err := a.converter(&convertCfg).Translate(cmd.Context(), in)
	if err != nil {
		return cli.NewCommandError("inspect", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), newInspectReport(m))
}

type inspectReport struct {
	SRS    string        `json:"srs"`
	Layers []layerReport `json:"layers"`
	Styles []styleReport `json:"styles"`
}

type layerReport struct {
	Name       string            `json:"name"`
	SRS        string            `json:"srs"`
	Styles     []string          `json:"styles"`
	Datasource map[string]string `json:"datasource,omitempty"`
}

type styleReport struct {
	Name  string       `json:"name"`
	Rules []ruleReport `json:"rules"`
}

type ruleReport struct {
	Name        string   `json:"name,omitempty"`
	Filter      string   `json:"filter,omitempty"`
	Else        bool     `json:"else,omitempty"`
	MinScale    *float64 `json:"min_scale,omitempty"`
	MaxScale    *float64 `json:"max_scale,omitempty"`
	Symbolizers []string `json:"symbolizers"`
}

func newInspectReport(m *mapnik.Map) *inspectReport {
	r := &inspectReport{SRS: m.SRS}

	for _, l := range m.Layers {
		lr := layerReport{Name: l.Name, SRS: l.SRS, Styles: l.StyleNames}
		if l.Datasource != nil {
			lr.Datasource = make(map[string]string, len(l.Datasource.Parameters))
			for _, p := range l.Datasource.Parameters {
				lr.Datasource[p.Name] = p.Value
			}
		}
		r.Layers = append(r.Layers, lr)
	}

	for _, s := range m.Styles {
		sr := styleReport{Name: s.Name}
		for _, rule := range s.Style.Rules {
			rr := ruleReport{
				Name:        rule.Name,
				Else:        rule.IsElse(),
				MinScale:    rule.MinScale,
				MaxScale:    rule.MaxScale,
				Symbolizers: []string{},
			}
			if expr, ok := rule.Filter(); ok {
				rr.Filter = string(expr)
			}
			for _, sym := range rule.Symbolizers {
				rr.Symbolizers = append(rr.Symbolizers, sym.Kind())
			}
			sr.Rules = append(sr.Rules, rr)
		}
		r.Styles = append(r.Styles, sr)
	}

	return r
}

// WriteText prints the report as an indented outline.
func (r *inspectReport) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "SRS: %s\n", r.SRS)
	fmt.Fprintf(&b, "\nLayers (%d):\n", len(r.Layers))
	for _, l := range r.Layers {
		fmt.Fprintf(&b, "  %s\n", l.Name)
		fmt.Fprintf(&b, "    styles: %s\n", strings.Join(l.Styles, ", "))
		if l.Datasource != nil {
			fmt.Fprintf(&b, "    datasource: %s %s\n", l.Datasource["type"], l.Datasource["file"])
		}
	}

	fmt.Fprintf(&b, "\nStyles (%d):\n", len(r.Styles))
	for _, s := range r.Styles {
		fmt.Fprintf(&b, "  %s\n", s.Name)
		for i, rule := range s.Rules {
			name := rule.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			fmt.Fprintf(&b, "    rule %s\n", name)
			switch {
			case rule.Filter != "":
				fmt.Fprintf(&b, "      filter: %s\n", rule.Filter)
			case rule.Else:
				b.WriteString("      else\n")
			}
			if rule.MinScale != nil || rule.MaxScale != nil {
				fmt.Fprintf(&b, "      scale: %s - %s\n", scaleText(rule.MinScale), scaleText(rule.MaxScale))
			}
			fmt.Fprintf(&b, "      symbolizers: %s\n", strings.Join(rule.Symbolizers, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func scaleText(v *float64) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%g", *v)
}
