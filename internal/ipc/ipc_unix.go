//go:build !windows

package ipc

import (
	"os"
	"path/filepath"
)

func socketPath() string {
	// Linux: the per-user runtime dir is private and cleaned on logout.
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipstash.sock")
	}
	// macOS / fallback
	return filepath.Join(os.TempDir(), "clipstash-"+os.Getenv("USER")+".sock")
}
