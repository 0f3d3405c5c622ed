// Package logging provides structured logging for sld2mapnik.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs and document paths
//   - Configurable log levels (debug, info, warn, error)
//
// Logs go to stderr unless Config.Writer is set; stdout is reserved for
// the generated Mapnik document.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	ctx := logging.WithRunID(ctx, logging.NewRunID())
//	ctx = logging.WithDocument(ctx, "roads.sld")
//	logger.InfoContext(ctx, "conversion finished", "layers", 2)
//
// Packages that only need a *slog.Logger receive logger.Slog().
package logging
