/*
Package cli provides command-line helpers for the sld2mapnik command.

Output Formatting:

Reports such as the inspect summary can be printed as text or JSON:

	format, err := cli.ParseOutputFormat("json")
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, report); err != nil {
		return err
	}

A value that implements TextWriter controls its own text rendering.

Signal Handling:

For graceful shutdown of watch mode on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
