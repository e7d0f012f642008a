package texture

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors produce for a single save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a fixed set of texture files.
// Directories are watched rather than files so that atomic rename-on-save is seen as well.
type Watcher struct {
	w        *fsnotify.Watcher
	root     string
	names    map[string]string // absolute path -> name relative to root
	onChange func(name string)
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher watches root-relative names and calls onChange with the name after each change settles.
//
// Parameters:
//   - root: the directory names are relative to
//   - names: slash-separated texture names
//   - onChange: called from the watcher goroutine
//   - logger: the structured logger, nil for slog.Default()
//
// Returns:
//   - *Watcher: the watcher, idle until Run is called
//   - error: error if the OS watcher cannot be created or a directory cannot be watched
func NewWatcher(root string, names []string, onChange func(name string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		w:        fw,
		root:     root,
		names:    make(map[string]string, len(names)),
		onChange: onChange,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}
	dirs := make(map[string]struct{})
	for _, name := range names {
		abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		w.names[abs] = name
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run dispatches change notifications until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			name, tracked := w.names[abs]
			if !tracked {
				continue
			}
			w.schedule(name)
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.logger.Warn("texture watcher error", "err", err)
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[name]; ok {
		t.Reset(debounce)
		return
	}
	w.timers[name] = time.AfterFunc(debounce, func() {
		w.mu.Lock()
		delete(w.timers, name)
		w.mu.Unlock()
		w.logger.Info("texture changed", "name", name)
		w.onChange(name)
	})
}

// Close stops watching and cancels pending notifications.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, t := range w.timers {
		t.Stop()
		delete(w.timers, name)
	}
	w.mu.Unlock()
	return w.w.Close()
}
