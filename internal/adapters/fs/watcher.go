package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/tiltapp/pkg/log"
)

// DefaultDebounceDelay coalesces the write+rename pair of a single save.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher reports changes to a store file made by any process.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	onChange      func()
	logger        log.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewWatcher watches path and calls onChange, debounced, after each change.
// Companion files sharing the name as a prefix (temp files, sqlite journals)
// count as changes too.
func NewWatcher(path string, delay time.Duration, onChange func(), logger log.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:          path,
		debounceDelay: delay,
		onChange:      onChange,
		logger:        logger,
	}
}

// Run blocks until ctx is cancelled or the watcher fails to start.
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	name := filepath.Base(w.path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	w.logger.Debug("store watcher started", log.String("path", w.path))

	defer w.stopDebounce()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.debounceNotify()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("store watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDelay, w.onChange)
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
}
