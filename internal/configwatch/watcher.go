// Package configwatch notifies the runner when the CLI config file changes.
// It watches the parent directory so editors that replace the file on save
// are still observed.
package configwatch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/avatarsync/pkg/log"
)

// DefaultDebounceDelay is the quiet period after the last write before onChange fires.
const DefaultDebounceDelay = 100 * time.Millisecond

// ErrNoPath is returned by Start when the watcher has no file to watch.
var ErrNoPath = errors.New("configwatch: no config path")

// Watcher monitors a single file and calls onChange after writes settle.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	logger        log.Logger
	onChange      func()

	mu       sync.Mutex
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDelay overrides DefaultDebounceDelay.
func WithDebounceDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for path. onChange runs on a timer goroutine.
func New(path string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		path:          path,
		debounceDelay: DefaultDebounceDelay,
		logger:        log.Nop(),
		onChange:      onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The directory must exist; the file need not.
func (w *Watcher) Start(ctx context.Context) error {
	if w.path == "" {
		return ErrNoPath
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(watchCtx, fw)

	w.logger.Info("config watcher started", log.String("path", w.path))
	return nil
}

// Stop ends the watch and cancels any pending notification.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		w.logger.Info("config file changed", log.String("path", w.path))
		w.onChange()
	})
}
