// Package logging holds helpers layered on log/slog.
package logging

import (
	"sync"
)

// DefaultSampleInterval is used when NewErrorSampler gets a non-positive interval.
const DefaultSampleInterval = 10

// ErrorSampler throttles repeated failure logs.
// The first failure for a key is logged, then every Nth one, until the key is reset
// by a success.
type ErrorSampler struct {
	mu       sync.Mutex
	counts   map[string]int
	interval int
}

func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = DefaultSampleInterval
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// Observe records one failure for key and reports whether it should be logged,
// along with the number of failures seen since the last reset.
func (s *ErrorSampler) Observe(key string) (log bool, occurrences int) {
	if s == nil {
		return true, 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	n := s.counts[key]
	return n == 1 || n%s.interval == 0, n
}

// Count returns the failures recorded for key since the last reset.
func (s *ErrorSampler) Count(key string) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Reset forgets key, typically after a request to that endpoint succeeds.
func (s *ErrorSampler) Reset(key string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}
