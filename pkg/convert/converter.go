package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"mercator-hq/sld2mapnik/pkg/mapnik"
	"mercator-hq/sld2mapnik/pkg/sld"
	"mercator-hq/sld2mapnik/pkg/telemetry/logging"
	"mercator-hq/sld2mapnik/pkg/telemetry/metrics"
	"mercator-hq/sld2mapnik/pkg/translate"
)

// Converter runs the read, translate, serialize and normalize stages.
// It is safe for concurrent use.
type Converter struct {
	opts    Options
	logger  *logging.Logger
	metrics *metrics.Collector
}

// New creates a converter. A nil logger discards output and a nil
// collector records nothing.
func New(opts Options, logger *logging.Logger, collector *metrics.Collector) *Converter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Converter{opts: opts, logger: logger, metrics: collector}
}

// Convert reads an SLD document from r and writes the Mapnik document to
// w. Nothing is written unless every stage succeeds.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (*Result, error) {
	ctx = ensureRunID(ctx)
	start := time.Now()

	result, err := c.convert(ctx, r, w)
	duration := time.Since(start)

	if err != nil {
		c.metrics.RecordConversion(metrics.StatusError, duration)
		c.logger.ErrorContext(ctx, "conversion failed", "error", err, "duration", duration)
		return nil, err
	}

	result.Duration = duration
	c.metrics.RecordConversion(metrics.StatusSuccess, duration)
	c.logger.InfoContext(ctx, "conversion complete",
		"layers", len(result.Map.Layers),
		"styles", len(result.Map.Styles),
		"bytes", result.Bytes,
		"duration", duration,
	)
	return result, nil
}

func (c *Converter) convert(ctx context.Context, r io.Reader, w io.Writer) (*Result, error) {
	m, err := c.translate(ctx, r)
	if err != nil {
		return nil, err
	}

	out, err := mapnik.Marshal(m)
	if err != nil {
		return nil, err
	}
	if c.opts.HexColors {
		if out, err = mapnik.FixHexColors(out); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := w.Write(out)
	if err != nil {
		return nil, fmt.Errorf("failed to write map document: %w", err)
	}

	return &Result{RunID: logging.GetRunID(ctx), Map: m, Bytes: n}, nil
}

// ConvertFile converts the SLD document at path and writes the result
// to w.
func (c *Converter) ConvertFile(ctx context.Context, path string, w io.Writer) (*Result, error) {
	ctx = logging.WithDocument(ensureRunID(ctx), path)

	f, err := os.Open(path)
	if err != nil {
		c.metrics.RecordConversion(metrics.StatusError, 0)
		c.logger.ErrorContext(ctx, "conversion failed", "error", err)
		return nil, &sld.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	result, err := c.Convert(ctx, f, w)
	if err != nil {
		return nil, withPath(err, path)
	}
	return result, nil
}

// ConvertFileTo converts the SLD document at in and replaces the file at
// out. The previous output is kept if the conversion fails.
func (c *Converter) ConvertFileTo(ctx context.Context, in, out string) (*Result, error) {
	var buf bytes.Buffer
	result, err := c.ConvertFile(ctx, in, &buf)
	if err != nil {
		return nil, err
	}
	if err := replaceFile(out, buf.Bytes()); err != nil {
		return nil, err
	}
	return result, nil
}

// ConvertTo converts the SLD document read from r and replaces the file
// at out.
func (c *Converter) ConvertTo(ctx context.Context, r io.Reader, out string) (*Result, error) {
	var buf bytes.Buffer
	result, err := c.Convert(ctx, r, &buf)
	if err != nil {
		return nil, err
	}
	if err := replaceFile(out, buf.Bytes()); err != nil {
		return nil, err
	}
	return result, nil
}

// replaceFile writes data to a temporary file next to path and renames it
// into place, so readers never see a partial document.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Translate decodes an SLD document and returns the translated map
// without serializing it.
func (c *Converter) Translate(ctx context.Context, r io.Reader) (*mapnik.Map, error) {
	return c.translate(ensureRunID(ctx), r)
}

func (c *Converter) translate(ctx context.Context, r io.Reader) (*mapnik.Map, error) {
	doc, err := sld.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := c.logger.WithContext(ctx)
	logger.Debug("decoded document",
		"named_layers", len(doc.NamedLayers),
		"user_layers", len(doc.UserLayers),
	)

	return translate.New(c.opts.Translate, logger.Slog(), c.metrics).Build(doc)
}

// ensureRunID returns ctx with a run ID, generating one if absent.
func ensureRunID(ctx context.Context) context.Context {
	if logging.GetRunID(ctx) != "" {
		return ctx
	}
	return logging.WithRunID(ctx, logging.NewRunID())
}

// withPath records path on a decode error.
func withPath(err error, path string) error {
	if pe, ok := err.(*sld.ParseError); ok && pe.Path == "" {
		pe.Path = path
	}
	return err
}
