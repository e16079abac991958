// Package watch re-runs regeneration when watched documents change.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a path must stay quiet before a run starts.
const DefaultDebounce = 300 * time.Millisecond

// Func is called once per settled batch of changes. Calls never overlap.
type Func func(ctx context.Context, changed []string) error

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watcher watches a fixed set of files. Parent directories are watched
// rather than the files themselves so atomic rename-over writes keep
// being observed.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	fn       Func
	log      *zap.Logger
	files    map[string]struct{}
	pending  map[string]time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool

	runs   int
	errors int
}

// New creates a Watcher for paths. It does not start watching.
func New(paths []string, fn Func, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if fn == nil {
		return nil, errors.New("nil watch func")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		fn:       fn,
		log:      opts.Logger,
		files:    make(map[string]struct{}, len(paths)),
		pending:  make(map[string]time.Time),
		debounce: opts.Debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Start begins the event loop in a goroutine. It returns immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher stopped")
	}
	if w.running {
		return nil
	}
	w.running = true
	w.log.Info("watching", zap.Int("files", len(w.files)), zap.Duration("debounce", w.debounce))
	go w.loop(ctx)
	return nil
}

// Stop ends the event loop, waits for any run in progress and releases the
// underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}
	if err := w.fs.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

// Done is closed when the event loop exits.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns how many runs were made and how many of them failed.
func (w *Watcher) Stats() (runs, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs, w.errors
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 4)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-tick.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return
	}
	name := filepath.Clean(ev.Name)
	if _, ok := w.files[name]; !ok {
		return
	}
	w.log.Debug("change", zap.String("path", name), zap.String("op", ev.Op.String()))
	w.pending[name] = time.Now()
}

// flush runs fn for paths that have been quiet for the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var settled []string
	for p, at := range w.pending {
		if now.Sub(at) < w.debounce {
			// Wait until the whole batch settles.
			return
		}
		settled = append(settled, p)
	}
	if len(settled) == 0 {
		return
	}
	clear(w.pending)
	sort.Strings(settled)

	err := w.fn(ctx, settled)

	w.mu.Lock()
	w.runs++
	if err != nil {
		w.errors++
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Error("regeneration failed", zap.Strings("changed", settled), zap.Error(err))
		return
	}
	w.log.Debug("regenerated", zap.Strings("changed", settled))
}
