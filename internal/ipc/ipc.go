// Package ipc is the control channel between clipstash CLI commands and a
// running daemon.
//
// The channel is gRPC served over a Unix domain socket. Messages are plain Go
// structs carried by a JSON codec, so there is no generated code. CLI
// commands probe the socket with IsRunning and fall back to working on the
// history file directly when no daemon answers.
package ipc

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"
)

const probeTimeout = 500 * time.Millisecond

// ErrAlreadyRunning is returned by Listen when a daemon already answers on
// the socket.
var ErrAlreadyRunning = errors.New("another clipstash daemon is listening")

// SocketPath returns the IPC socket path: $CLIPSTASH_SOCKET when set,
// otherwise a per-platform default (see socketPath).
func SocketPath() string {
	if s := os.Getenv("CLIPSTASH_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a daemon appears to be listening on the socket.
// It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.DialTimeout("unix", SocketPath(), probeTimeout)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on the IPC socket. A socket file left behind by
// a crashed daemon is removed first; a live one is an error, so two daemons
// never share the socket.
func Listen() (net.Listener, error) {
	path := SocketPath()
	if IsRunning() {
		return nil, fmt.Errorf("listen %s: %w", path, ErrAlreadyRunning)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return net.Listen("unix", path)
}
