package history

import (
	"os"
	"path/filepath"
)

const (
	dirName  = "clipboard-history"
	fileName = "history.dat"
)

// DataDir resolves the base data directory. A non-empty override wins, then
// $XDG_DATA_HOME, then $HOME/.local/share, then the current directory.
func DataDir(override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}

// PathIn returns the history file location under dataDir. The
// clipboard-history subdirectory is shared with earlier clipboard-history
// tools, so their files load unchanged.
func PathIn(dataDir string) string {
	return filepath.Join(dataDir, dirName, fileName)
}
