// Package history is the persisted clipboard log: a bounded, deduplicated,
// newest-first list of entries stored in a small binary file.
//
// A History is not safe for concurrent use. Processes coordinate only
// through the file; every mutation rewrites it in full, and the last writer
// wins.
package history

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"go.klb.dev/clipstash/internal/fsutil"
)

// DefaultMaxItems is the history size used when none is configured.
const DefaultMaxItems = 50

const filePerm = 0o600

// History is the in-memory list backed by a history file.
type History struct {
	path     string
	maxItems int
	items    []Entry
	now      func() time.Time
	// disk is the file as this History last read or wrote it.
	disk os.FileInfo
}

// Load reads the history file at path. A missing file or one with an
// unrecognised header loads as an empty history. Entries beyond maxItems
// (left by a run with a larger limit) are dropped.
func Load(path string, maxItems int) (*History, error) {
	if maxItems < 1 {
		return nil, fmt.Errorf("max items must be at least 1, got %d", maxItems)
	}
	h := &History{path: path, maxItems: maxItems, now: time.Now}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return h, nil
	case err != nil:
		return nil, fmt.Errorf("read history: %w", err)
	}

	items, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	h.items = items
	h.truncate()
	h.disk = stat(path)
	return h, nil
}

// Path returns the backing file.
func (h *History) Path() string { return h.path }

// MaxItems returns the configured bound.
func (h *History) MaxItems() int { return h.maxItems }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.items) }

// Items returns a copy of the entries, newest first.
func (h *History) Items() []Entry { return slices.Clone(h.items) }

// Get returns the entry at index i.
func (h *History) Get(i int) (Entry, bool) {
	if i < 0 || i >= len(h.items) {
		return Entry{}, false
	}
	return h.items[i], true
}

// AddText records text as the newest entry. The text is trimmed first;
// whitespace-only input is ignored and reported as false. An existing entry
// with the same content is moved to the front with a fresh timestamp.
func (h *History) AddText(text string, isPassword bool) (bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, nil
	}

	if i := slices.IndexFunc(h.items, func(e Entry) bool { return e.Content == trimmed }); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, newEntry(trimmed, isPassword, h.now()))
	h.truncate()

	if err := h.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every entry and persists the empty history.
func (h *History) Clear() error {
	h.items = nil
	return h.save()
}

func (h *History) truncate() {
	if len(h.items) > h.maxItems {
		h.items = slices.Delete(h.items, h.maxItems, len(h.items))
	}
}

func (h *History) save() error {
	data, err := encode(h.items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := fsutil.WriteAtomic(h.path, data, filePerm); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	h.disk = stat(h.path)
	return nil
}

// InSync reports whether the file on disk is still the one this History
// last loaded or saved. Every save replaces the file, so a match on identity,
// size and modification time means nobody else has written it since.
func (h *History) InSync() bool {
	if h.disk == nil {
		return false
	}
	cur := stat(h.path)
	return cur != nil &&
		os.SameFile(cur, h.disk) &&
		cur.Size() == h.disk.Size() &&
		cur.ModTime().Equal(h.disk.ModTime())
}

func stat(path string) os.FileInfo {
	fi, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return fi
}
