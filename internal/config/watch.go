package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

var ErrWatcherClosed = errors.New("config watcher closed")

// Watcher reports rewrites of one config file. The parent directory is watched so
// atomic replaces (write temp, rename) are seen.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
}

func Watch(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{w: w, path: filepath.Clean(path)}, nil
}

func (w *Watcher) Path() string { return w.path }

// Next blocks until the file was written or replaced and returns its new contents.
// A file that fails to parse is logged and skipped.
func (w *Watcher) Next() (Config, error) {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				log.Printf("config: reload %s: %v", w.path, err)
				continue
			}
			return cfg, nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			log.Printf("config: watch %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
