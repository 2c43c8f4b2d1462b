package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/viper"

	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/history"
	"go.klb.dev/clipstash/internal/ipc"
	"go.klb.dev/clipstash/internal/picker"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// historyPath resolves the history file from the data-dir setting. The
// result is absolute so it can be compared with a daemon's path.
func historyPath(v *viper.Viper) string {
	path := history.PathIn(history.DataDir(v.GetString("data-dir")))
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// connectDaemon returns a client for the running daemon together with its
// status, but only when that daemon records into path. It returns a nil
// client when no daemon answers or it serves a different history file.
func connectDaemon(ctx context.Context, path string) (*ipc.Client, *ipc.StatusReply, error) {
	if !ipc.IsRunning() {
		return nil, nil, nil
	}
	c, err := ipc.Dial()
	if err != nil {
		return nil, nil, err
	}
	reply, err := c.Status(ctx)
	if err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("status: %w", err)
	}
	if filepath.Clean(reply.HistoryPath) != filepath.Clean(path) {
		slog.Debug("daemon serves another history, using the file directly",
			"daemon_history", reply.HistoryPath,
			"history", path,
		)
		_ = c.Close()
		return nil, reply, nil
	}
	return c, reply, nil
}

func loadHistory(v *viper.Viper) (*history.History, error) {
	return history.Load(historyPath(v), v.GetInt("max-items"))
}

func newBackend(v *viper.Viper) (clip.Backend, error) {
	b, err := clip.New(v.GetString("backend"))
	if err != nil {
		return nil, fmt.Errorf("clipboard backend: %w", err)
	}
	return b, nil
}

func newSelector(v *viper.Viper) (picker.Selector, error) {
	switch name := v.GetString("picker"); name {
	case "", "command":
		argv := strings.Fields(v.GetString("picker-command"))
		if len(argv) == 0 {
			return nil, fmt.Errorf("picker-command is empty")
		}
		return picker.NewCommand(argv, v.GetString("picker-preselect-flag")), nil
	case "tui":
		return &picker.TUI{Prompt: "Clipboard"}, nil
	default:
		return nil, fmt.Errorf("unknown picker %q (want command or tui)", name)
	}
}
