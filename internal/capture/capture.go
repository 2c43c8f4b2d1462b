// Package capture implements the clipboard polling loop that feeds the
// history.
//
// The loop goroutine is the only owner of its History. Other goroutines
// (the control socket, the history file watcher) reach it through channels.
package capture

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/clipstash/internal/classify"
	"go.klb.dev/clipstash/internal/clip"
	"go.klb.dev/clipstash/internal/history"
	"go.klb.dev/clipstash/internal/logging"
)

const (
	DefaultPollInterval = 400 * time.Millisecond
	DefaultErrorBackoff = 2 * time.Second
)

// State is the loop's memory of the last recorded clipboard text. The zero
// value is Idle.
type State struct {
	Last     string
	Tracking bool
}

// Idle is the state before anything has been recorded.
var Idle = State{}

// Tracked returns the state after text was recorded.
func Tracked(text string) State { return State{Last: text, Tracking: true} }

// Resume seeds the state from the newest history entry, so a restarted
// daemon does not re-stamp content that is still on the clipboard.
func Resume(h *history.History) State {
	if e, ok := h.Get(0); ok {
		return Tracked(e.Content)
	}
	return Idle
}

// Config tunes a Loop. Zero fields take their defaults.
type Config struct {
	PollInterval time.Duration
	ErrorBackoff time.Duration
	// Sensitive classifies captured text; defaults to classify.IsSensitive.
	Sensitive func(string) bool
	// WatchHistory reloads the history when another process rewrites the
	// file (for example "clipstash clear" without a daemon connection).
	WatchHistory bool
}

// Loop polls a clipboard backend and records new text.
type Loop struct {
	hist     *history.History
	backend  clip.Backend
	cfg      Config
	requests chan func()
	stats    Stats
}

// Stats are counters kept by the loop goroutine.
type Stats struct {
	StartedAt   time.Time
	LastCapture time.Time
	Captured    int
	ReadErrors  int
	SaveErrors  int
	Reloads     int
}

// New returns a Loop recording into h.
func New(h *history.History, backend clip.Backend, cfg Config) *Loop {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = DefaultErrorBackoff
	}
	if cfg.Sensitive == nil {
		cfg.Sensitive = classify.IsSensitive
	}
	return &Loop{
		hist:     h,
		backend:  backend,
		cfg:      cfg,
		requests: make(chan func()),
	}
}

// Tick performs one poll and returns the next state and how long to wait
// before the next poll. Errors never escape: a failed read or save is logged
// and answered with the error backoff.
func (l *Loop) Tick(ctx context.Context, st State) (State, time.Duration) {
	text, ok, err := l.backend.Read(ctx)
	if err != nil {
		l.stats.ReadErrors++
		slog.Warn("clipboard read failed",
			"backend", l.backend.Name(),
			"err", err,
			"retry_in", l.cfg.ErrorBackoff,
		)
		return st, l.cfg.ErrorBackoff
	}
	if !ok {
		return st, l.cfg.PollInterval
	}
	if st.Tracking && text == st.Last {
		return st, l.cfg.PollInterval
	}

	sensitive := l.cfg.Sensitive(text)
	added, err := l.hist.AddText(text, sensitive)
	if err != nil {
		l.stats.SaveErrors++
		slog.Error("recording clipboard failed", "err", err, "retry_in", l.cfg.ErrorBackoff)
		return st, l.cfg.ErrorBackoff
	}
	if !added {
		// Left untracked so a later differing read is classified afresh.
		return st, l.cfg.PollInterval
	}

	l.stats.Captured++
	l.stats.LastCapture = time.Now()
	slog.Info("clipboard captured", "entries", l.hist.Len(), "sensitive", sensitive)
	slog.Debug("clipboard content", "content", logging.Content(text, sensitive))
	return Tracked(text), l.cfg.PollInterval
}

// Run polls until ctx is cancelled, starting from st. It returns nil on
// cancellation.
func (l *Loop) Run(ctx context.Context, st State) error {
	l.stats.StartedAt = time.Now()

	var changed <-chan struct{}
	if l.cfg.WatchHistory {
		w, err := watchFile(l.hist.Path())
		if err != nil {
			slog.Warn("history file watch unavailable", "path", l.hist.Path(), "err", err)
		} else {
			defer w.Close()
			changed = w.Changed()
		}
	}

	slog.Info("capture loop started",
		"backend", l.backend.Name(),
		"history", l.hist.Path(),
		"entries", l.hist.Len(),
		"poll_interval", l.cfg.PollInterval,
	)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("capture loop stopped", "captured", l.stats.Captured)
			return nil
		case <-timer.C:
			var next time.Duration
			st, next = l.Tick(ctx, st)
			timer.Reset(next)
		case fn := <-l.requests:
			fn()
		case <-changed:
			l.reload()
		}
	}
}

// reload replaces the in-memory history with the file contents. Events for
// the loop's own saves are ignored, and a file that cannot be loaded leaves
// the current history in place.
func (l *Loop) reload() {
	if l.hist.InSync() {
		return
	}
	h, err := history.Load(l.hist.Path(), l.hist.MaxItems())
	if err != nil {
		slog.Warn("history reload failed, keeping in-memory copy", "err", err)
		return
	}
	if h.Len() != l.hist.Len() {
		slog.Info("history changed on disk", "entries", h.Len())
	}
	l.hist = h
	l.stats.Reloads++
}
