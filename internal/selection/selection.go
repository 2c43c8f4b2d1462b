// Package selection runs the interactive "pick a past entry" flow.
package selection

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/history"
	"go.klb.dev/clipstash/internal/picker"
)

// EmptyMessage is printed when there is nothing to choose from.
const EmptyMessage = "Clipboard history is empty."

// Flow presents the history through a Selector and writes the chosen entry
// back to the clipboard.
type Flow struct {
	// Load reads the history from disk. It is called once up front and again
	// after every sticky pick.
	Load      func() (*history.History, error)
	Selector  picker.Selector
	Clipboard clip.Backend
	// Sticky keeps the selector open after a pick.
	Sticky        bool
	MaskPasswords bool
	Out           io.Writer
}

// Run executes the flow until the user cancels, a one-shot pick completes,
// or an error occurs.
func (f *Flow) Run(ctx context.Context) error {
	h, err := f.Load()
	if err != nil {
		return err
	}
	if h.Len() == 0 {
		_, err := fmt.Fprintln(f.out(), EmptyMessage)
		return err
	}

	preselect := picker.NoPreselect
	for {
		items := h.Items()
		idx, ok, err := f.Selector.Select(ctx, Previews(items, f.MaskPasswords), preselect)
		if err != nil {
			return fmt.Errorf("selector: %w", err)
		}
		if !ok || idx < 0 {
			slog.Debug("selection cancelled")
			return nil
		}

		if idx >= len(items) {
			if !f.Sticky {
				return nil
			}
			preselect = picker.NoPreselect
			continue
		}

		e := items[idx]
		if err := f.Clipboard.Write(ctx, e.Content); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
		slog.Debug("entry restored", "index", idx, "sensitive", e.IsPassword)
		if !f.Sticky {
			return nil
		}

		// The daemon may have re-recorded the restored text; show what is on
		// disk now and keep the restored entry highlighted wherever it moved.
		if h, err = f.Load(); err != nil {
			return err
		}
		if h.Len() == 0 {
			_, err := fmt.Fprintln(f.out(), EmptyMessage)
			return err
		}
		preselect = indexOf(h.Items(), e.Content)
	}
}

// indexOf returns the position of the entry holding content, or
// picker.NoPreselect.
func indexOf(items []history.Entry, content string) int {
	if i := slices.IndexFunc(items, func(e history.Entry) bool { return e.Content == content }); i >= 0 {
		return i
	}
	return picker.NoPreselect
}

func (f *Flow) out() io.Writer {
	if f.Out == nil {
		return io.Discard
	}
	return f.Out
}

// Previews renders one single-line label per entry.
func Previews(items []history.Entry, maskPasswords bool) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = strings.ReplaceAll(history.Preview(e, maskPasswords), "\t", "    ")
	}
	return out
}
