package ingest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatchOptions tunes the file watcher.
type WatchOptions struct {
	// Patterns are doublestar globs a changed file must match to trigger
	// the callback. Nil uses DefaultTokenPatterns.
	Patterns []string

	// Excludes are directory globs never worth watching.
	// Nil uses DefaultExcludes.
	Excludes []string

	// DebounceMs groups rapid events on the same file. Zero uses 200ms.
	DebounceMs int
}

// DefaultWatchOptions returns the watcher settings used by the CLI.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher watches a workspace for token export changes and invokes a
// callback per changed file, debounced so editor save bursts trigger one
// re-ingest instead of several.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)
	logger   *slog.Logger
	options  WatchOptions
	root     string

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher that calls onChange with the absolute path
// of every token file that is written or created under the watched root.
func NewWatcher(onChange func(path string), options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.Patterns == nil {
		options.Patterns = DefaultTokenPatterns
	}
	if options.Excludes == nil {
		options.Excludes = DefaultExcludes
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}

	return &Watcher{
		watcher:        fsw,
		onChange:       onChange,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and its subdirectories. Runs the event
// loop in a background goroutine; call Stop to shut it down.
func (w *Watcher) Start(rootPath string) error {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	w.root = absRoot

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("file watcher started", "root", absRoot)
	go w.eventLoop()
	return nil
}

// Stop shuts the watcher down. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if w.excluded(path) {
		return
	}

	// New subdirectories need their own watch.
	if event.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
			return
		}
	}

	if !w.matches(path) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		w.debounce(path)
	case event.Op&fsnotify.Create == fsnotify.Create:
		w.debounce(path)
	}
}

// debounce schedules the callback after the debounce delay. Later events
// on the same file within the window reset the timer.
func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.onChange(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) rel(path string) string {
	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

func (w *Watcher) excluded(path string) bool {
	relPath := w.rel(path)
	for _, pattern := range w.options.Excludes {
		if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) matches(path string) bool {
	relPath := w.rel(path)
	for _, pattern := range w.options.Patterns {
		if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
			return true
		}
	}
	return false
}
