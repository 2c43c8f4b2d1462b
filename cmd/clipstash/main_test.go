package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipstash/internal/capture"
	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/history"
	"go.klb.dev/clipstash/internal/ipc"
)

// isolate points config discovery, the IPC socket and the data dir at
// temporary locations and returns the data dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLIPSTASH_SOCKET", filepath.Join(home, "none.sock"))
	t.Setenv("CLIPSTASH_MAX_ITEMS", "")
	t.Setenv("CLIPSTASH_DATA_DIR", "")
	return t.TempDir()
}

func seed(t *testing.T, dataDir string, entries ...string) {
	t.Helper()
	h, err := history.Load(history.PathIn(dataDir), history.DefaultMaxItems)
	require.NoError(t, err)
	for _, e := range entries {
		_, err := h.AddText(e, e == "S3cret!pw")
		require.NoError(t, err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "clipstash dev\n", out.String())
}

func TestPrint(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "first line\nsecond", "S3cret!pw")

	out, err := run(t, "print", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "0: "+history.Mask+"\n1: first line\n", out)

	out, err = run(t, "print", "--data-dir", dir, "--mask-passwords=false")
	require.NoError(t, err)
	assert.Equal(t, "0: S3cret!pw\n1: first line\n", out)
}

func TestPrintLong(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "hello")

	out, err := run(t, "print", "--data-dir", dir, "--long")
	require.NoError(t, err)
	assert.Contains(t, out, "0:")
	assert.Contains(t, out, "5 B")
	assert.Contains(t, out, "hello")
}

func TestClearWithoutDaemon(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "a", "b")

	out, err := run(t, "clear", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Clipboard history cleared.\n", out)

	out, err = run(t, "print", "--data-dir", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStatusWithoutDaemon(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "a", "b")

	out, err := run(t, "status", "--data-dir", dir, "--json")
	require.NoError(t, err)

	var got statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Running)
	assert.Equal(t, 2, got.Entries)
	assert.Equal(t, history.DefaultMaxItems, got.MaxItems)
	assert.Equal(t, history.PathIn(dir), got.HistoryPath)
	assert.False(t, got.Newest.IsZero())

	out, err = run(t, "status", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "not running")
	assert.Contains(t, out, "2 / 50")
}

func TestMaxItemsFromEnv(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "old", "new")
	t.Setenv("CLIPSTASH_MAX_ITEMS", "1")

	out, err := run(t, "print", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "0: new\n", out)
}

func TestDataDirFromConfigFile(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "from config")

	cfg := filepath.Join(t.TempDir(), "clipstash.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("data-dir = \""+filepath.ToSlash(dir)+"\"\n"), 0o600))

	out, err := run(t, "print", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "0: from config\n", out)
}

func TestTruncatedHistoryFails(t *testing.T) {
	dir := isolate(t)
	path := history.PathIn(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("CHST\x01\x00\x00"), 0o600))

	_, err := run(t, "print", "--data-dir", dir)
	require.ErrorIs(t, err, history.ErrTruncated)
}

func TestInvalidUsage(t *testing.T) {
	isolate(t)

	_, err := run(t, "frobnicate")
	require.Error(t, err)

	_, err = run(t, "print", "--no-such-flag")
	require.Error(t, err)
}

func TestUnknownPicker(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "select", "--data-dir", dir, "--picker", "carrier-pigeon")
	require.ErrorContains(t, err, "unknown picker")
}

// startDaemon runs a capture loop and its control service for the history in
// dataDir, listening on the socket chosen by isolate.
func startDaemon(t *testing.T, dataDir string) *capture.Loop {
	t.Helper()
	h, err := history.Load(history.PathIn(dataDir), history.DefaultMaxItems)
	require.NoError(t, err)
	loop := capture.New(h, clip.NewMemory(), capture.Config{})

	lis, err := ipc.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	serveDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx, capture.Resume(h)) }()
	go func() { serveDone <- ipc.Serve(ctx, lis, ipc.NewService(loop, Version)) }()

	t.Cleanup(func() {
		cancel()
		for _, done := range []chan error{loopDone, serveDone} {
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Error("daemon did not stop")
			}
		}
	})
	require.Eventually(t, ipc.IsRunning, 2*time.Second, 10*time.Millisecond)
	return loop
}

func entries(t *testing.T, loop *capture.Loop) int {
	t.Helper()
	s, err := loop.Status(context.Background())
	require.NoError(t, err)
	return s.Entries
}

func fileEntries(t *testing.T, dataDir string) int {
	t.Helper()
	h, err := history.Load(history.PathIn(dataDir), history.DefaultMaxItems)
	require.NoError(t, err)
	return h.Len()
}

func TestClearRoutesToMatchingDaemon(t *testing.T) {
	dir := isolate(t)
	seed(t, dir, "a", "b")
	loop := startDaemon(t, dir)

	out, err := run(t, "clear", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Clipboard history cleared.\n", out)
	assert.Equal(t, 0, entries(t, loop), "daemon's in-memory history is cleared")
	assert.Equal(t, 0, fileEntries(t, dir))
}

func TestClearOtherHistoryLeavesDaemonAlone(t *testing.T) {
	daemonDir := isolate(t)
	otherDir := t.TempDir()
	seed(t, daemonDir, "daemon entry")
	seed(t, otherDir, "other entry")
	loop := startDaemon(t, daemonDir)

	out, err := run(t, "clear", "--data-dir", otherDir)
	require.NoError(t, err)
	assert.Equal(t, "Clipboard history cleared.\n", out)

	assert.Equal(t, 0, fileEntries(t, otherDir))
	assert.Equal(t, 1, fileEntries(t, daemonDir))
	assert.Equal(t, 1, entries(t, loop))
}

func TestStatusWithDaemon(t *testing.T) {
	daemonDir := isolate(t)
	otherDir := t.TempDir()
	seed(t, daemonDir, "a")
	seed(t, otherDir, "x", "y")
	startDaemon(t, daemonDir)

	out, err := run(t, "status", "--data-dir", daemonDir, "--json")
	require.NoError(t, err)
	var got statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Running)
	assert.Equal(t, "memory", got.Backend)
	assert.Equal(t, 1, got.Entries)

	out, err = run(t, "status", "--data-dir", otherDir, "--json")
	require.NoError(t, err)
	got = statusOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Running)
	assert.Equal(t, history.PathIn(daemonDir), got.OtherDaemon)
	assert.Equal(t, history.PathIn(otherDir), got.HistoryPath)
	assert.Equal(t, 2, got.Entries)
}
