package capture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher signals when a single file is created, written, renamed or
// removed. It watches the parent directory because atomic saves replace the
// file's inode.
type fileWatcher struct {
	w       *fsnotify.Watcher
	path    string
	changed chan struct{}
	done    chan struct{}
}

func watchFile(path string) (*fileWatcher, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	fw := &fileWatcher{
		w:       w,
		path:    path,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

// Changed delivers at most one pending notification; bursts coalesce.
func (fw *fileWatcher) Changed() <-chan struct{} { return fw.changed }

func (fw *fileWatcher) run() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path || (ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write)) {
				continue
			}
			select {
			case fw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			slog.Warn("history watcher error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
