package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryFollowUpStore keeps follow-up markers for the life of the process.
type MemoryFollowUpStore struct {
	mu   sync.Mutex
	sent map[int]time.Time
}

func NewMemoryFollowUpStore() *MemoryFollowUpStore {
	return &MemoryFollowUpStore{sent: make(map[int]time.Time)}
}

func (s *MemoryFollowUpStore) MarkSent(_ context.Context, leadID int, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sent[leadID]; ok {
		return false, nil
	}
	s.sent[leadID] = at
	return true, nil
}

func (s *MemoryFollowUpStore) SentAt(leadID int) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.sent[leadID]
	return at, ok
}
