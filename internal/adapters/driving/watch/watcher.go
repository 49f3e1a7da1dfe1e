// Package watch imports statements dropped into an inbox directory.
//
// The watcher listens for file events with fsnotify, waits for a file to
// settle so half-written PDFs are never read, and throttles imports with a
// token bucket.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/logger"
)

// ErrMissingImportService is returned when no import service is provided.
var ErrMissingImportService = errors.New("watch: import service is required")

// DefaultSettle is how long a file must be quiet before it is imported.
const DefaultSettle = 2 * time.Second

// ResultFunc receives the outcome of every import the watcher runs.
type ResultFunc func(path string, result *domain.ImportResult, err error)

// Options configures a Watcher.
type Options struct {
	// ImportsPerMinute caps the import rate. Zero or less means unlimited.
	ImportsPerMinute int

	// Settle is the quiet period after the last event. Zero means DefaultSettle.
	Settle time.Duration

	// ImportExisting queues PDFs already in the directory at start.
	ImportExisting bool

	// DryRun is passed through to every import.
	DryRun bool

	// OnResult is called after each import. May be nil.
	OnResult ResultFunc
}

// Watcher imports PDFs as they appear in a directory.
type Watcher struct {
	importer driving.ImportService
	opts     Options
	limiter  *rate.Limiter
	now      func() time.Time
	pending  map[string]time.Time
}

// New creates a Watcher.
func New(importer driving.ImportService, opts Options) (*Watcher, error) {
	if importer == nil {
		return nil, ErrMissingImportService
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}

	limit := rate.Inf
	if opts.ImportsPerMinute > 0 {
		limit = rate.Limit(float64(opts.ImportsPerMinute) / 60.0)
	}

	return &Watcher{
		importer: importer,
		opts:     opts,
		limiter:  rate.NewLimiter(limit, 1),
		now:      time.Now,
		pending:  make(map[string]time.Time),
	}, nil
}

// Run watches dir until ctx is cancelled. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s", dir)

	if w.opts.ImportExisting {
		if err := w.queueExisting(dir); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.opts.Settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := shouldImport(event); ok {
				logger.Debug("event %s on %s", event.Op, path)
				w.pending[path] = w.now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-ticker.C:
			for _, path := range w.due() {
				if err := w.importFile(ctx, path); err != nil {
					// Only cancellation stops the loop.
					return nil
				}
			}
		}
	}
}

// queueExisting marks every statement already in dir as due.
func (w *Watcher) queueExisting(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	settled := w.now().Add(-w.opts.Settle)
	for _, e := range entries {
		if !e.IsDir() && IsStatement(e.Name()) {
			w.pending[filepath.Join(dir, e.Name())] = settled
		}
	}
	return nil
}

// due removes and returns pending paths that have been quiet for the settle
// period, in name order.
func (w *Watcher) due() []string {
	cutoff := w.now().Add(-w.opts.Settle)
	var ready []string
	for path, last := range w.pending {
		if !last.After(cutoff) {
			ready = append(ready, path)
		}
	}
	for _, path := range ready {
		delete(w.pending, path)
	}
	sort.Strings(ready)
	return ready
}

// importFile waits for the limiter and imports path. It returns an error only
// when ctx is cancelled while waiting.
func (w *Watcher) importFile(ctx context.Context, path string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	result, err := w.importer.Import(ctx, path, driving.ImportOptions{DryRun: w.opts.DryRun})
	if err != nil {
		logger.Error("import %s: %v", path, err)
	}
	if w.opts.OnResult != nil {
		w.opts.OnResult(path, result, err)
	}
	return nil
}

// shouldImport reports whether event announces new statement content.
func shouldImport(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !IsStatement(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// IsStatement reports whether name looks like a statement PDF. Hidden and
// partial download files are ignored.
func IsStatement(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".pdf")
}
