package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

// Operation is the kind of change seen for a manuscript file.
type Operation int

const (
	// OpCreate indicates a new file appeared.
	OpCreate Operation = iota
	// OpModify indicates an existing file was written or replaced.
	OpModify
	// OpDelete indicates a file was removed or renamed away.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is one change to a file directly inside the watched directory.
type FileEvent struct {
	// Path is the file's base name.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before a batch is emitted.
	Debounce time.Duration
	// Filter selects the file names that matter. Nil accepts every name.
	Filter func(name string) bool
	Logger *slog.Logger
}

// Watcher reports debounced changes to the files of one directory.
// Subdirectories are not watched.
type Watcher struct {
	dir   string
	opts  Options
	ready chan struct{}
}

// New creates a watcher for dir.
func New(dir string, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{dir: dir, opts: opts, ready: make(chan struct{})}
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled, calling onBatch for every debounced
// batch. Batches are delivered one at a time. Run returns nil on
// cancellation and an error if the directory cannot be watched.
func (w *Watcher) Run(ctx context.Context, onBatch func(context.Context, []FileEvent)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New(errors.ErrCodeInternal, "create file watcher", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.dir); err != nil {
		return errors.New(errors.ErrCodeManuscriptNotFound, "cannot watch "+w.dir, err).
			WithSuggestion("Create the manuscript directory before starting watch mode")
	}
	close(w.ready)
	w.opts.Logger.Info("watch_started",
		slog.String("dir", w.dir),
		slog.Duration("debounce", w.opts.Debounce))

	debouncer := NewDebouncer(w.opts.Debounce, w.opts.Logger)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer debouncer.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if fe, ok := w.translate(ev); ok {
					debouncer.Add(fe)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				w.opts.Logger.Warn("watch_error", slog.String("error", err.Error()))
			}
		}
	})

	g.Go(func() error {
		for batch := range debouncer.Output() {
			if gctx.Err() != nil {
				continue
			}
			onBatch(gctx, batch)
		}
		return nil
	})

	err = g.Wait()
	w.opts.Logger.Info("watch_stopped", slog.String("dir", w.dir))
	return err
}

// translate maps an fsnotify event to a FileEvent. Permission changes and
// filtered names are dropped.
func (w *Watcher) translate(ev fsnotify.Event) (FileEvent, bool) {
	name := filepath.Base(ev.Name)
	if w.opts.Filter != nil && !w.opts.Filter(name) {
		return FileEvent{}, false
	}

	fe := FileEvent{Path: name, Timestamp: time.Now()}
	switch {
	case ev.Has(fsnotify.Create):
		fe.Operation = OpCreate
	case ev.Has(fsnotify.Write):
		fe.Operation = OpModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		fe.Operation = OpDelete
	default:
		return FileEvent{}, false
	}
	return fe, true
}
