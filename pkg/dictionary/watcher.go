package dictionary

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bastiangx/phrasematch/internal/logger"
	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-applies a pattern file to a matcher whenever the file changes.
type Watcher struct {
	path     string
	matcher  *textmatch.SyncMatcher
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	debounce time.Duration
	onApply  func(Diff)
	stop     chan struct{}
	done     chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnApply registers fn to run after every successful reload.
func WithOnApply(fn func(Diff)) WatchOption {
	return func(w *Watcher) { w.onApply = fn }
}

// NewWatcher starts watching path. The directory is watched rather than the
// file so editors that save by rename are still seen.
func NewWatcher(path string, m *textmatch.SyncMatcher, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     filepath.Clean(abs),
		matcher:  m,
		watcher:  fw,
		logger:   logger.New("watch"),
		debounce: DefaultDebounce,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.watchFiles()
	w.logger.Debugf("Watching %s", w.path)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchFiles() {
	defer close(w.done)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("file watcher error: %v", err)
		}
	}
}

// reload keeps the current entries if the file does not load.
func (w *Watcher) reload() {
	set, err := Load(w.path)
	if err != nil {
		w.logger.Errorf("Reload of %s failed, keeping current entries: %v", w.path, err)
		return
	}
	var d Diff
	w.matcher.Update(func(m *textmatch.Matcher) {
		d = Apply(m, set)
	})
	w.logger.Infof("Reloaded %s: %s", w.path, d)
	if w.onApply != nil {
		w.onApply(d)
	}
}
