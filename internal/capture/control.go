package capture

import (
	"context"
	"time"
)

// Status is a point-in-time view of a running loop.
type Status struct {
	Backend     string
	HistoryPath string
	Entries     int
	MaxItems    int
	Newest      time.Time
	Stats
}

// Status asks the running loop for a snapshot. It blocks until the loop
// answers or ctx is done.
func (l *Loop) Status(ctx context.Context) (Status, error) {
	res := make(chan Status, 1)
	if err := l.do(ctx, func() { res <- l.snapshot() }); err != nil {
		return Status{}, err
	}
	return <-res, nil
}

// Clear empties the history from the loop goroutine. The tracked state is
// kept, so text still on the clipboard is not recorded again.
func (l *Loop) Clear(ctx context.Context) error {
	res := make(chan error, 1)
	if err := l.do(ctx, func() { res <- l.hist.Clear() }); err != nil {
		return err
	}
	return <-res
}

func (l *Loop) snapshot() Status {
	s := Status{
		Backend:     l.backend.Name(),
		HistoryPath: l.hist.Path(),
		Entries:     l.hist.Len(),
		MaxItems:    l.hist.MaxItems(),
		Stats:       l.stats,
	}
	if e, ok := l.hist.Get(0); ok {
		s.Newest = e.Time()
	}
	return s
}

// do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.requests <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
