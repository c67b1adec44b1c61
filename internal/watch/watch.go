package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more changes.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called with the changed files of one debounced batch, sorted.
// The list is empty when events were lost. An error is logged; watching
// goes on.
type Handler func(ctx context.Context, changed []string) error

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period closing a batch. Zero means DefaultDebounce.
	Debounce time.Duration
	// Ignore lists base name patterns (filepath.Match syntax) never reported,
	// typically the generated output file.
	Ignore []string
	// Logger receives watch progress. Nil discards.
	Logger *slog.Logger
}

// Watcher reports changed Go files in a fixed set of directories.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler Handler
	opts    Options
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New starts watching dirs. Directories are not watched recursively: each
// package directory is listed on its own.
func New(dirs []string, handler Handler, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	logger.Debug("watching", slog.Int("dirs", len(dirs)), slog.Duration("debounce", opts.Debounce))

	return &Watcher{fsw: fsw, handler: handler, opts: opts, logger: logger}, nil
}

// Run delivers batches to the handler until ctx is done. It closes the
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.opts.Debounce)
		} else {
			timer.Reset(w.opts.Debounce)
		}

		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("change", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("events lost; regenerating", slog.Any("error", err))
				schedule()

				continue
			}

			w.logger.Warn("watch error", slog.Any("error", err))

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}

			clear(pending)
			slices.Sort(changed)

			if err := w.handler(ctx, changed); err != nil {
				w.logger.Error("regeneration failed", slog.Any("error", err))
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})

	return w.closeErr
}

// relevant reports whether event touches a non-test Go source file that is
// not ignored. Permission changes are not content changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	if filepath.Ext(base) != ".go" || strings.HasSuffix(base, "_test.go") {
		return false
	}

	for _, pattern := range w.opts.Ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return false
		}
	}

	return true
}
