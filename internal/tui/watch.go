package tui

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/barysiuk/skillmgr/internal/core"
	"github.com/barysiuk/skillmgr/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events, e.g. a copy of a
// whole skill bundle, into one reload.
const watchDebounce = 250 * time.Millisecond

// rootChangedMsg asks the app to rescan after an outside change.
type rootChangedMsg struct {
	root string
}

// rootWatcher watches an agent root, both skill roots and each bundle
// directory one level below them.
type rootWatcher struct {
	root    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newRootWatcher(root string, delay time.Duration) (*rootWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	rw := &rootWatcher{
		root:    root,
		watcher: w,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	rw.add(root)
	for _, state := range []core.SkillState{core.StateEnabled, core.StateDisabled} {
		sub := filepath.Join(root, state.DirName())
		rw.add(sub)
		entries, _ := os.ReadDir(sub)
		for _, e := range entries {
			rw.add(filepath.Join(sub, e.Name()))
		}
	}

	go rw.loop(delay)
	return rw, nil
}

// add watches path when it is a directory; symlinked bundles are followed.
func (rw *rootWatcher) add(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := rw.watcher.Add(path); err != nil {
		logger.For("watch").WithError(err).WithField("path", path).Debug("cannot watch directory")
	}
}

func (rw *rootWatcher) loop(delay time.Duration) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	fire := func() {
		select {
		case rw.changes <- struct{}{}:
		default:
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == event.Op {
				continue
			}
			// New roots and bundles need their own watch so edits inside
			// them are seen.
			if event.Op&fsnotify.Create != 0 && rw.shouldWatch(event.Name) {
				rw.add(event.Name)
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(delay, fire)
			mu.Unlock()

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			logger.For("watch").WithError(err).Warn("watcher error")

		case <-rw.done:
			return
		}
	}
}

func (rw *rootWatcher) shouldWatch(path string) bool {
	parent := filepath.Dir(path)
	for _, state := range []core.SkillState{core.StateEnabled, core.StateDisabled} {
		root := filepath.Join(rw.root, state.DirName())
		if path == root || parent == root {
			return true
		}
	}
	return false
}

// wait returns a command that blocks until the next debounced change.
func (rw *rootWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-rw.changes:
			return rootChangedMsg{root: rw.root}
		case <-rw.done:
			return nil
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (rw *rootWatcher) Close() error {
	var err error
	rw.once.Do(func() {
		close(rw.done)
		err = rw.watcher.Close()
	})
	return err
}
