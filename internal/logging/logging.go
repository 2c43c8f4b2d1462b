// Package logging configures the global slog logger for clipstash commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Format selects the log output format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures Setup.
type Options struct {
	Format Format
	Level  slog.Level
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// ParseFormat converts a string to a Format, returning FormatAuto for unknown values.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "text", "tint", "human":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ParseLevel converts a string to a slog.Level. An empty or unknown string
// yields debug for interactive sessions and info otherwise.
func ParseLevel(s string, interactive bool) slog.Level {
	var l slog.Level
	if s != "" {
		if err := l.UnmarshalText([]byte(s)); err == nil {
			return l
		}
	}
	if interactive {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// New builds a logger without installing it.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	useTint := opts.Format == FormatText || (opts.Format == FormatAuto && IsTTY(w))

	var h slog.Handler
	if useTint {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      opts.Level,
			TimeFormat: "15:04:05.000",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: opts.Level,
		})
	}
	return slog.New(h)
}

// Setup installs the global slog logger. Call once after flag/viper parsing.
func Setup(opts Options) {
	slog.SetDefault(New(opts))
}

const contentPreviewRunes = 40

// Content renders clipboard text for a log attribute. Sensitive text never
// reaches the log; everything else is cut to a short single-line prefix.
func Content(text string, sensitive bool) string {
	if sensitive {
		return fmt.Sprintf("[masked, %d bytes]", len(text))
	}
	line, _, multi := strings.Cut(text, "\n")
	if utf8.RuneCountInString(line) > contentPreviewRunes {
		line = string([]rune(line)[:contentPreviewRunes])
		multi = true
	}
	if multi {
		return fmt.Sprintf("%s… (%d bytes)", line, len(text))
	}
	return line
}
