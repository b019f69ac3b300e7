package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// debounce window after a write event so an editor saving in several
// chunks triggers a single re-lint
const watchDebounce = 100 * time.Millisecond

// Watcher re-lints SwiftSC files as they change on disk. Writes to the
// same file within the debounce window are coalesced per file.
type Watcher struct {
	engine    *Engine
	watcher   *fsnotify.Watcher
	logger    *zap.Logger
	watchDirs []string
	onIssues  func(filename string, issues []tt.Issue)

	mu       sync.Mutex
	watching bool
	timers   map[string]*time.Timer
}

// NewWatcher creates a watcher over the given directories. onIssues is
// invoked with the result of every re-lint.
func NewWatcher(engine *Engine, logger *zap.Logger, dirs []string, onIssues func(string, []tt.Issue)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		engine:    engine,
		watcher:   fsw,
		logger:    logger,
		watchDirs: dirs,
		onIssues:  onIssues,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// StartWatching registers every directory under the watch roots and
// begins the event loop.
func (w *Watcher) StartWatching() error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return fmt.Errorf("already watching")
	}
	w.watching = true
	w.mu.Unlock()

	for _, dir := range w.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	go w.watchLoop()
	return nil
}

// StopWatching ends the event loop, cancels pending re-lints and
// releases the watcher.
func (w *Watcher) StopWatching() error {
	w.mu.Lock()
	if !w.watching {
		w.logger.Warn("not watching")
	}
	w.watching = false
	for name, timer := range w.timers {
		timer.Stop()
		delete(w.timers, name)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

// watchLoop runs until the fsnotify channels close, which Close()
// guarantees after StopWatching.
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".swsc") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watching {
		return
	}
	if timer, ok := w.timers[event.Name]; ok {
		timer.Reset(watchDebounce)
		return
	}
	name := event.Name
	w.timers[name] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		delete(w.timers, name)
		stopped := !w.watching
		w.mu.Unlock()
		if stopped {
			return
		}
		w.lintFile(name)
	})
}

func (w *Watcher) lintFile(filename string) {
	issues, err := w.engine.Run(filename)
	if err != nil {
		w.logger.Error("lint failed", zap.String("file", filename), zap.Error(err))
		return
	}
	w.logger.Info("lint finished",
		zap.String("file", filename),
		zap.Int("issues", len(issues)),
	)
	if w.onIssues != nil {
		w.onIssues(filename, issues)
	}
}
