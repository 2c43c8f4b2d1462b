package picker

import (
	"context"
	"slices"
	"sync"
)

// Response is one scripted answer for Scripted.
type Response struct {
	Index int
	OK    bool
	Err   error
}

// Call records the arguments of one Select call.
type Call struct {
	Previews  []string
	Preselect int
}

// Scripted is a Selector for tests that replays queued responses. Once the
// queue is exhausted every call reports cancellation.
type Scripted struct {
	mu        sync.Mutex
	responses []Response
	calls     []Call
}

// NewScripted returns a Scripted selector answering with responses in order.
func NewScripted(responses ...Response) *Scripted {
	return &Scripted{responses: responses}
}

// Pick is shorthand for a Response choosing idx.
func Pick(idx int) Response { return Response{Index: idx, OK: true} }

// Cancel is shorthand for a cancelled Response.
func Cancel() Response { return Response{} }

func (s *Scripted) Select(_ context.Context, previews []string, preselect int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Previews: slices.Clone(previews), Preselect: preselect})
	if len(s.responses) == 0 {
		return 0, false, nil
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r.Index, r.OK, r.Err
}

// Calls returns every recorded call.
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}
