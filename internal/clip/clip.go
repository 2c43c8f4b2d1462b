// Package clip provides plain-text access to the system clipboard.
//
// Backends:
//
//	command  wl-paste/wl-copy (Wayland), xclip (X11), pbpaste/pbcopy (macOS)
//	native   golang.design/x/clipboard, in-process
//	atotto   github.com/atotto/clipboard
//	memory   in-process fake used by tests
package clip

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned when no clipboard mechanism can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Backend is the interface every clipboard implementation satisfies.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard text. ok is false when the
	// clipboard is empty or holds no text; err is reserved for failures of
	// the mechanism itself (tool missing, crashed).
	Read(ctx context.Context) (text string, ok bool, err error)

	// Write replaces the clipboard contents with text.
	Write(ctx context.Context, text string) error
}

// New returns the backend registered under name. "auto" (or "") prefers a
// clipboard command found on PATH and falls back to the native backend.
func New(name string) (Backend, error) {
	switch name {
	case "", "auto":
		if b, ok := DetectCommand(); ok {
			return b, nil
		}
		return NewNative()
	case "command", "exec":
		if b, ok := DetectCommand(); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%w: no clipboard command on PATH", ErrUnavailable)
	case "native":
		return NewNative()
	case "atotto":
		return NewAtotto()
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", name)
	}
}

// normalize repairs invalid UTF-8 and trims surrounding whitespace, so every
// backend reports the same text for the same clipboard contents.
func normalize(raw []byte) (string, bool) {
	text := strings.TrimSpace(strings.ToValidUTF8(string(raw), "\uFFFD"))
	return text, text != ""
}
