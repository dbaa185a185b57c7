// Package watcher reloads configuration when navshell config files change.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/navshell/config"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce applies when New is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// ConfigWatcher watches config directories and calls onChange with the
// changed files once writes have settled.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *logrus.Entry
	onChange func(files []string)

	// targetToLink maps symlink targets back to the link inside a watched dir.
	targetToLink map[string]string

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New watches dirs. Directories that do not exist are skipped.
func New(dirs []string, debounce time.Duration, logger *logrus.Entry, onChange func(files []string)) (*ConfigWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &ConfigWatcher{
		watcher:      fw,
		debounce:     debounce,
		logger:       logger,
		onChange:     onChange,
		targetToLink: make(map[string]string),
		pending:      make(map[string]struct{}),
	}

	watched := make(map[string]bool)
	add := func(dir string) {
		if watched[dir] {
			return
		}
		if err := fw.Add(dir); err != nil {
			logger.WithError(err).WithField("dir", dir).Debug("Not watching directory")
			return
		}
		watched[dir] = true
		logger.WithField("dir", dir).Debug("Watching config directory")
	}

	for _, dir := range dirs {
		add(dir)

		// fsnotify does not follow symlinks, so watch link targets explicitly.
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !config.IsConfigFile(entry.Name()) || entry.Type()&os.ModeSymlink == 0 {
				continue
			}
			link := filepath.Join(dir, entry.Name())
			target, err := filepath.EvalSymlinks(link)
			if err != nil {
				logger.WithError(err).Warnf("Failed to resolve symlink %s", link)
				continue
			}
			w.targetToLink[target] = link
			add(filepath.Dir(target))
		}
	}

	return w, nil
}

// Start processes events until ctx is cancelled.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			name := event.Name
			if link, ok := w.targetToLink[name]; ok {
				name = link
			}
			if !config.IsConfigFile(name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.schedule(name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Error("Watcher error")
		case <-ctx.Done():
			w.stopTimer()
			return nil
		}
	}
}

// schedule collects file into the pending batch and (re)arms the debounce timer,
// so a burst of writes produces one callback after the last write.
func (w *ConfigWatcher) schedule(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[file] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *ConfigWatcher) flush() {
	w.mu.Lock()
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	if len(files) == 0 {
		return
	}
	sort.Strings(files)
	w.logger.WithField("files", files).Info("Config changed")
	if w.onChange != nil {
		w.onChange(files)
	}
}

func (w *ConfigWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Close releases the underlying watcher without waiting for Start to return.
func (w *ConfigWatcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
