package products

import (
	"sync"
	"time"
)

// idSource hands out millisecond-timestamp ids that never repeat: each id
// is greater than the previous one and not already used in the list.
type idSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (s *idSource) next(taken func(int64) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	for taken(id) {
		id++
	}
	s.last = id
	return id
}
