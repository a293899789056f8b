package testutil

import (
	"sync"
)

// CaptureSink is an interceptor.Sink that records every message it
// receives, for assertions in tests. Safe for concurrent use.
type CaptureSink struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

// NewCaptureSink returns an empty CaptureSink
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

// Info records an info-level message
func (s *CaptureSink) Info(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, msg)
}

// Error records an error-level message
func (s *CaptureSink) Error(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, msg)
}

// Infos returns a copy of the captured info messages in order
func (s *CaptureSink) Infos() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.infos))
	copy(out, s.infos)
	return out
}

// Errors returns a copy of the captured error messages in order
func (s *CaptureSink) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.errors))
	copy(out, s.errors)
	return out
}

// Reset clears all captured messages
func (s *CaptureSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = nil
	s.errors = nil
}
