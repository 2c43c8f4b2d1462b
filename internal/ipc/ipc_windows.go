//go:build windows

package ipc

import (
	"os"
	"path/filepath"
)

// Windows 10 and later support AF_UNIX sockets on NTFS paths.
func socketPath() string {
	return filepath.Join(os.TempDir(), "clipstash.sock")
}
