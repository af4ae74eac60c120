package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/vidtouch/vidtouch/filesystem"
	"github.com/vidtouch/vidtouch/log"
)

// OnChangeFunc receives the new listing after the directory changed.
type OnChangeFunc func(videos []*Video)

// Watcher keeps a listing of a directory current by rescanning it whenever a
// file is created, removed or renamed.
type Watcher struct {
	mu        sync.RWMutex
	dir       string
	recursive bool
	videos    []*Video
	watcher   *fsnotify.Watcher
	onChange  OnChangeFunc
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

// NewWatcher scans dir once and prepares to watch it.
// Watching needs kernel notifications, so it fails on an in-memory filesystem.
func NewWatcher(dir string, recursive bool, onChange OnChangeFunc) (*Watcher, error) {
	if !filesystem.IsOs() {
		return nil, errors.New("watching requires the os filesystem")
	}

	videos, err := Scan(dir, recursive)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	root, _ := filepath.Abs(dir)
	w := &Watcher{
		dir:       root,
		recursive: recursive,
		videos:    videos,
		watcher:   fw,
		onChange:  onChange,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	if err := w.addDirs(); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// addDirs registers the root and, when recursive, every visible subdirectory.
func (w *Watcher) addDirs() error {
	if !w.recursive {
		return w.watcher.Add(w.dir)
	}

	return filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return err
		}
		if path != w.dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Videos returns the current listing.
func (w *Watcher) Videos() []*Video {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*Video(nil), w.videos...)
}

// Start runs the watch loop in the background until Stop.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	defer close(w.done)

	log.Infof("watching %s", w.dir)
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}

			log.WithFields(log.Fields{"op": event.Op.String(), "name": event.Name}).Debug("library changed")
			if w.recursive && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}
			w.rescan()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch %s: %v", w.dir, err)
		}
	}
}

func (w *Watcher) rescan() {
	videos, err := Scan(w.dir, w.recursive)
	if err != nil {
		log.Warn(err)
		return
	}

	w.mu.Lock()
	w.videos = videos
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(videos)
	}
}

// Stop ends the watch loop and releases the notification handle.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

// Wait blocks until the loop started by Start has returned.
func (w *Watcher) Wait() {
	<-w.done
}

func relevant(e fsnotify.Event) bool {
	return e.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
