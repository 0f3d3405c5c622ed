package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/sld2mapnik/pkg/cli"
)

var convertFlags struct {
	conversionFlags
	output string
}

var convertCmd = &cobra.Command{
	Use:   "convert <sld> [datasource]",
	Short: "Convert an SLD document to Mapnik XML",
	Long: `Convert an SLD document to a Mapnik XML style document.

The document is written to stdout unless --output is given. Use "-" as the
SLD path to read from stdin. The optional datasource argument, or
--datasource, attaches a file to every layer; its .prj file, if any, sets
the spatial reference unless --srid is given.

Nothing is written when the conversion fails.

Examples:
  # Convert to stdout
  sld2mapnik convert roads.sld

  # Attach a shapefile and write to a file
  sld2mapnik convert roads.sld data/roads.shp -o roads.xml

  # Pin the spatial reference and write hex colors
  sld2mapnik convert roads.sld --srid 3857 --hex-colors`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertFlags.register(convertCmd)
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file (default stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, &convertFlags.conversionFlags)
	if err != nil {
		return err
	}
	defer a.flushMetrics()

	var positional string
	if len(args) > 1 {
		positional = args[1]
	}
	convertCfg, err := convertFlags.convertConfig(cmd, a.cfg, positional)
	if err != nil {
		return err
	}

	conv := a.converter(&convertCfg)
	ctx := cmd.Context()
	in, out := args[0], convertFlags.output

	switch {
	case in == "-" && out != "":
		_, err = conv.ConvertTo(ctx, cmd.InOrStdin(), out)
	case in == "-":
		_, err = conv.Convert(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	case out != "":
		_, err = conv.ConvertFileTo(ctx, in, out)
	default:
		_, err = conv.ConvertFile(ctx, in, cmd.OutOrStdout())
	}
	return cli.NewCommandError("convert", err)
}
