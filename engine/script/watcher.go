package script

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce suppresses the burst of events editors emit for a single save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to YAML cue sheets in a set of directories so a
// running demo can reload its script without restarting. Changed file paths
// arrive on Events, watch failures on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the given directories for cue sheet changes.
//
// Parameters:
//   - dirs: directories to watch (non-recursive)
//
// Returns:
//   - *Watcher: the running watcher
//   - error: if the underlying filesystem watcher cannot be created
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("script: create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("script: watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Safe to call more than once. Events and Errors are
// closed by the delivery goroutine once it drains, so a consumer ranging over
// them terminates cleanly.
//
// Returns:
//   - error: from closing the underlying filesystem watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run is the sole writer and closer of Events/Errors. Sends race shutdown, so
// every send selects against closeCh rather than blocking on a full buffer.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isCueSheet(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			pruneDebounce(last, now)
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// pruneDebounce drops entries too old to suppress anything, so the map stays
// bounded by the number of files changed within one debounce window.
func pruneDebounce(last map[string]time.Time, now time.Time) {
	for path, t := range last {
		if now.Sub(t) >= debounce {
			delete(last, path)
		}
	}
}

func isCueSheet(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
