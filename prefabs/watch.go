package prefabs

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reports changed table and script files under the watched dirs.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
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

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Reload blocks until ctx is done, reloading the tables from dir after each
// change and handing every table set that validates to apply. A broken edit is
// logged and skipped, leaving the previous tables in force.
func (w *Watcher) Reload(ctx context.Context, dir string, logger zerolog.Logger, apply func(*Tables)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.closeCh:
			return
		case name := <-w.Events:
			tables, err := LoadTables(dir)
			if err != nil {
				logger.Warn().Err(err).Str("file", name).Msg("table reload rejected")
				continue
			}
			logger.Info().Str("file", name).Msg("tables reloaded")
			apply(tables)
		case err := <-w.Errors:
			logger.Warn().Err(err).Msg("table watcher error")
		}
	}
}

// run forwards a file name once it has been quiet for reloadDebounce, so an
// editor's create-then-write burst reloads a complete file once.
func (w *Watcher) run() {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	emit := func(name string) {
		mu.Lock()
		delete(timers, name)
		mu.Unlock()
		select {
		case w.Events <- name:
		case <-w.closeCh:
		}
	}
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isTableFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			name := event.Name
			mu.Lock()
			if t, ok := timers[name]; ok {
				t.Reset(reloadDebounce)
			} else {
				timers[name] = time.AfterFunc(reloadDebounce, func() { emit(name) })
			}
			mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isTableFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
