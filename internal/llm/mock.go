package llm

import (
	"context"
	"sync"
)

// MockCompleter is a scripted Completer for testing. Replies are returned
// in order; the last one repeats once the script runs out.
type MockCompleter struct {
	Responses []string
	Error     error // returned by every call when set

	mu       sync.Mutex
	requests []Request
}

// Complete records req and returns the next scripted reply.
func (m *MockCompleter) Complete(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.Error != nil {
		return "", m.Error
	}
	if len(m.Responses) == 0 {
		return "", nil
	}

	i := len(m.requests) - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// Calls returns how many requests were made.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests.
func (m *MockCompleter) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
