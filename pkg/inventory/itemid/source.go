// Package itemid issues time-based item identifiers.
package itemid

import (
	"strconv"
	"sync"
	"time"
)

// Source issues string identifiers derived from the wall clock in
// milliseconds. Identifiers returned by one Source are strictly
// increasing: two calls inside the same millisecond get consecutive
// values instead of colliding. Safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewSource creates a Source backed by the wall clock.
func NewSource() *Source {
	return &Source{now: time.Now}
}

// Next returns a fresh identifier.
func (s *Source) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	millis := s.now().UnixMilli()
	if millis <= s.last {
		millis = s.last + 1
	}
	s.last = millis

	return strconv.FormatInt(millis, 10)
}
