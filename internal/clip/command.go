package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Command is a Backend that shells out to clipboard tools.
type Command struct {
	name  string
	read  []string
	write []string
}

// NewCommand returns a Backend running read to fetch the clipboard and
// piping text into write to set it.
func NewCommand(name string, read, write []string) *Command {
	return &Command{name: name, read: read, write: write}
}

// DetectCommand picks the clipboard tools for the current session:
// wl-clipboard under Wayland, xclip under X11, pbpaste/pbcopy on macOS.
func DetectCommand() (*Command, bool) {
	if runtime.GOOS == "darwin" {
		if onPath("pbpaste", "pbcopy") {
			return NewCommand("pbpaste/pbcopy", []string{"pbpaste"}, []string{"pbcopy"}), true
		}
		return nil, false
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" && onPath("wl-paste", "wl-copy") {
		return NewCommand("wl-clipboard",
			[]string{"wl-paste", "--no-newline", "--type", "text"},
			[]string{"wl-copy"},
		), true
	}
	if os.Getenv("DISPLAY") != "" && onPath("xclip") {
		return NewCommand("xclip",
			[]string{"xclip", "-selection", "clipboard", "-o"},
			[]string{"xclip", "-selection", "clipboard"},
		), true
	}
	return nil, false
}

func onPath(tools ...string) bool {
	for _, t := range tools {
		if _, err := exec.LookPath(t); err != nil {
			return false
		}
	}
	return true
}

func (c *Command) Name() string { return c.name }

// Read runs the read command. A non-zero exit means the clipboard is empty
// or holds no text; failing to start the command is an error.
func (c *Command) Read(ctx context.Context) (string, bool, error) {
	cmd := exec.CommandContext(ctx, c.read[0], c.read[1:]...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("run %s: %w", c.read[0], err)
	}

	text, ok := normalize(out)
	return text, ok, nil
}

// Write pipes text into the write command.
func (c *Command) Write(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, c.write[0], c.write[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("run %s: %w: %s", c.write[0], err, msg)
		}
		return fmt.Errorf("run %s: %w", c.write[0], err)
	}
	return nil
}
