package clip

import (
	"context"
	"slices"
	"sync"
)

// ReadResult is one scripted answer for Memory.Read.
type ReadResult struct {
	Text string
	OK   bool
	Err  error
}

// Memory is an in-process Backend for tests. Reads return queued results
// first, then the current contents.
type Memory struct {
	mu       sync.Mutex
	text     string
	has      bool
	queue    []ReadResult
	reads    int
	writes   []string
	writeErr error
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Name() string { return "memory" }

// Set replaces the current contents.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.has = text, true
}

// Clear empties the clipboard.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.has = "", false
}

// Queue appends scripted read results.
func (m *Memory) Queue(results ...ReadResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// FailWrites makes every later Write return err. Pass nil to reset.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Reads returns how many times Read was called.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns every successfully written text, oldest first.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.writes)
}

func (m *Memory) Read(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		return r.Text, r.OK, r.Err
	}
	return m.text, m.has, nil
}

func (m *Memory) Write(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, text)
	m.text, m.has = text, true
	return nil
}
