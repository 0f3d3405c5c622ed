package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/sld2mapnik/pkg/cli"
	"mercator-hq/sld2mapnik/pkg/config"
	"mercator-hq/sld2mapnik/pkg/telemetry/logging"
	"mercator-hq/sld2mapnik/pkg/watch"
)

var watchFlags struct {
	conversionFlags
	output   string
	debounce time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch <sld|dir>",
	Short: "Convert SLD documents again whenever they change",
	Long: `Convert an SLD document, or every SLD document in a directory, and convert
it again each time it changes. Runs until interrupted.

For a single document --output names the output file. For a directory it
names the output directory, which must lie outside the watched directory;
each document is written to <output>/<name>.xml.

The configuration file, if any, is reloaded before every conversion.

Examples:
  sld2mapnik watch roads.sld -o roads.xml
  sld2mapnik watch styles/ -o build/ --debounce 500ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags.register(watchCmd)
	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "output file, or output directory when watching a directory")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", config.DefaultWatchDebounce, "quiet period after the last change before converting")
	_ = watchCmd.MarkFlagRequired("output")
}

// watchTarget maps changed SLD files to their output files.
type watchTarget struct {
	in  string
	out string
	dir bool
}

func newWatchTarget(in, out string) (*watchTarget, error) {
	absIn, err := filepath.Abs(in)
	if err != nil {
		return nil, cli.NewCommandError("watch", err)
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return nil, cli.NewCommandError("watch", err)
	}

	info, err := os.Stat(absIn)
	if err != nil {
		return nil, cli.NewCommandError("watch", err)
	}
	if !info.IsDir() {
		if absIn == absOut {
			return nil, cli.NewConfigError("output", "must differ from the input document")
		}
		return &watchTarget{in: absIn, out: absOut}, nil
	}

	rel, err := filepath.Rel(absIn, absOut)
	if err != nil {
		return nil, cli.NewCommandError("watch", err)
	}
	if rel == "." || !strings.HasPrefix(rel, "..") {
		return nil, cli.NewConfigError("output", "must lie outside the watched directory")
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return nil, cli.NewCommandError("watch", err)
	}
	return &watchTarget{in: absIn, out: absOut, dir: true}, nil
}

// outputFor returns the output file for a changed document.
func (t *watchTarget) outputFor(path string) string {
	if !t.dir {
		return t.out
	}
	base := filepath.Base(path)
	return filepath.Join(t.out, strings.TrimSuffix(base, filepath.Ext(base))+".xml")
}

// documents lists the documents converted at startup.
func (t *watchTarget) documents(extensions []string) ([]string, error) {
	if !t.dir {
		return []string{t.in}, nil
	}

	var docs []string
	err := filepath.WalkDir(t.in, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != t.in && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range extensions {
			if ext == strings.ToLower(e) {
				docs = append(docs, path)
				break
			}
		}
		return nil
	})
	return docs, err
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, &watchFlags.conversionFlags)
	if err != nil {
		return err
	}
	defer a.flushMetrics()

	// Validate flags before the first conversion.
	if _, err := watchFlags.convertConfig(cmd, a.cfg, ""); err != nil {
		return err
	}

	target, err := newWatchTarget(args[0], watchFlags.output)
	if err != nil {
		return err
	}

	wcfg := watch.ConfigFromSettings(&a.cfg.Watch, target.in)
	if cmd.Flags().Changed("debounce") {
		if watchFlags.debounce <= 0 {
			return cli.NewConfigError("debounce", "must be positive")
		}
		wcfg.DebounceInterval = watchFlags.debounce
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	convertAll := func(ctx context.Context, paths []string) error {
		if path := configPath(); path != "" {
			if err := config.ReloadConfig(path); err != nil {
				a.logger.Warn("keeping previous configuration", "path", path, "error", err)
			} else if !verbose {
				if level, err := logging.ParseLevel(config.MustGetConfig().Telemetry.Logging.Level); err == nil {
					a.logger.SetLevel(level)
				}
			}
		}
		convertCfg, err := watchFlags.convertConfig(cmd, config.MustGetConfig(), "")
		if err != nil {
			return err
		}
		conv := a.converter(&convertCfg)

		var errs []error
		for _, path := range paths {
			if _, err := conv.ConvertFileTo(ctx, path, target.outputFor(path)); err != nil {
				errs = append(errs, err)
			}
		}
		a.flushMetrics()
		return errors.Join(errs...)
	}

	docs, err := target.documents(wcfg.Extensions)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	if err := convertAll(ctx, docs); err != nil {
		a.logger.Error("initial conversion failed", "error", err)
	}

	w, err := watch.New(wcfg, a.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() {
		if err := w.Stop(); err != nil {
			a.logger.Warn("failed to stop watcher", "error", err)
		}
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (press Ctrl+C to stop)\n", args[0])
	return cli.NewCommandError("watch", w.Watch(ctx, convertAll))
}
