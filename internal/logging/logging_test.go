package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("tint"))
	assert.Equal(t, FormatText, ParseFormat("TEXT"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatAuto, ParseFormat("yaml"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn", true))
	assert.Equal(t, slog.LevelDebug, ParseLevel("", true))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", false))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud", false))
}

func TestNewJSONWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: FormatAuto, Level: slog.LevelInfo, Writer: &buf})

	log.Debug("hidden")
	log.Info("captured", "bytes", 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "captured", rec["msg"])
	assert.EqualValues(t, 5, rec["bytes"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: FormatText, Level: slog.LevelInfo, Writer: &buf})

	log.Info("captured")
	assert.Contains(t, buf.String(), "captured")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestContent(t *testing.T) {
	assert.Equal(t, "[masked, 9 bytes]", Content("P@ssw0rd!", true))
	assert.Equal(t, "short text", Content("short text", false))
	assert.Equal(t, "first… (12 bytes)", Content("first\nsecond", false))

	long := strings.Repeat("x", 50)
	assert.Equal(t, strings.Repeat("x", 40)+"… (50 bytes)", Content(long, false))
}
