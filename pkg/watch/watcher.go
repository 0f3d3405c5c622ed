package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/sld2mapnik/pkg/config"
)

// Config contains configuration for a Watcher.
type Config struct {
	// Path is the SLD file or directory to watch.
	Path string

	// DebounceInterval is the quiet period after the last event before
	// onChange runs (default: 100ms).
	DebounceInterval time.Duration

	// Extensions filters events when Path is a directory. A watched file
	// is matched by name regardless of its extension.
	Extensions []string

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: config.DefaultWatchDebounce,
		Extensions:       append([]string(nil), config.DefaultWatchExtensions...),
		SkipHidden:       true,
	}
}

// ConfigFromSettings returns a watcher configuration for path using the
// watch section of the application configuration.
func ConfigFromSettings(cfg *config.WatchConfig, path string) *Config {
	c := DefaultConfig()
	c.Path = path
	if cfg.DebounceInterval > 0 {
		c.DebounceInterval = cfg.DebounceInterval
	}
	if len(cfg.Extensions) > 0 {
		c.Extensions = append([]string(nil), cfg.Extensions...)
	}
	return c
}

// ChangeFunc is called with the files that changed during one debounce
// window.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher watches an SLD file, or a directory of them, and reports
// changes after debouncing.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// target is the absolute path of a watched file, empty in directory
	// mode.
	target string

	mu       sync.RWMutex
	running  bool
	ctx      context.Context
	onChange ChangeFunc

	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
}

// New creates a watcher. The path must exist.
func New(cfg *Config, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", cfg.Path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher: fsw,
		logger:  logger,
		config:  cfg,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	if !info.IsDir() {
		w.target = abs
	}
	w.debounce = NewDebouncer(cfg.DebounceInterval, w.dispatch)

	if err := w.addPath(abs, info.IsDir()); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Watch blocks until ctx is cancelled or Stop is called, running
// onChange for every debounced batch of changes. Errors from onChange
// are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.ctx = ctx
	w.onChange = onChange
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		close(w.doneCh)
	}()

	w.logger.Info("watching for changes",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops a running Watch and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stopCh) })

	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()
	if running {
		<-w.doneCh
	}
	w.debounce.Stop()

	var err error
	w.closeOnce.Do(func() { err = w.watcher.Close() })
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories in directory mode must be added to be observed.
	if w.target == "" && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectory(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.shouldProcessEvent(event) {
		return
	}

	w.logger.Debug("file event detected",
		"path", event.Name,
		"op", event.Op.String(),
	)
	w.debounce.Trigger(event.Name)
}

func (w *Watcher) dispatch(paths []string) {
	w.mu.RLock()
	ctx, onChange := w.ctx, w.onChange
	w.mu.RUnlock()

	if onChange == nil || ctx.Err() != nil {
		return
	}

	w.logger.Info("change detected", "files", len(paths))
	if err := onChange(ctx, paths); err != nil {
		w.logger.Error("conversion after change failed", "error", err)
	}
}

// addPath watches a file through its parent directory so that editors
// replacing the file by rename are still observed.
func (w *Watcher) addPath(abs string, isDir bool) error {
	if isDir {
		return w.addDirectory(abs)
	}
	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}
	return nil
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if w.config.SkipHidden && isHidden(path) && path != dir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", path, err)
			}
			w.logger.Debug("watching directory", "path", path)
		}
		return nil
	})
}

// shouldProcessEvent reports whether an event changes a watched SLD
// file. Removals and attribute changes are ignored.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if w.target != "" {
		return filepath.Clean(event.Name) == w.target
	}

	if !w.hasValidExtension(strings.ToLower(filepath.Ext(event.Name))) {
		return false
	}
	if w.config.SkipHidden && isHidden(event.Name) {
		return false
	}
	return true
}

func (w *Watcher) hasValidExtension(ext string) bool {
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
