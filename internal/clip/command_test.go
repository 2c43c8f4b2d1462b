package clip

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandReadTrimsOutput(t *testing.T) {
	requireShell(t)
	c := NewCommand("test", []string{"sh", "-c", "printf '  hello\\n'"}, nil)

	text, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", text)
}

func TestCommandReadNonZeroExitIsEmpty(t *testing.T) {
	requireShell(t)
	c := NewCommand("test", []string{"sh", "-c", "echo 'No selection' >&2; exit 1"}, nil)

	_, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommandReadWhitespaceIsEmpty(t *testing.T) {
	requireShell(t)
	c := NewCommand("test", []string{"sh", "-c", "printf '\\n\\t '"}, nil)

	_, ok, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommandReadMissingToolIsError(t *testing.T) {
	c := NewCommand("test", []string{"clipstash-no-such-tool"}, nil)

	_, _, err := c.Read(context.Background())
	require.Error(t, err)
}

func TestCommandWrite(t *testing.T) {
	requireShell(t)
	out := t.TempDir() + "/clip.txt"
	c := NewCommand("test", nil, []string{"sh", "-c", "cat > " + out})

	require.NoError(t, c.Write(context.Background(), "copied text"))

	read := NewCommand("test", []string{"cat", out}, nil)
	text, ok, err := read.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "copied text", text)
}

func TestCommandWriteFailureIncludesStderr(t *testing.T) {
	requireShell(t)
	c := NewCommand("test", nil, []string{"sh", "-c", "echo 'no display' >&2; exit 3"})

	err := c.Write(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("carrier-pigeon")
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, ok, err := m.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	m.Queue(ReadResult{Text: "queued", OK: true})
	m.Set("current")

	text, _, _ := m.Read(ctx)
	assert.Equal(t, "queued", text)
	text, _, _ = m.Read(ctx)
	assert.Equal(t, "current", text)

	require.NoError(t, m.Write(ctx, "written"))
	text, ok, _ = m.Read(ctx)
	assert.True(t, ok)
	assert.Equal(t, "written", text)
	assert.Equal(t, []string{"written"}, m.Writes())
	assert.Equal(t, 4, m.Reads())
}
