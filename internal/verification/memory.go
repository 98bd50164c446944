package verification

import (
	"context"
	"sync"
	"time"
)

type pendingCode struct {
	code     string
	expires  time.Time
	attempts int
}

// MemoryStore keeps codes in process memory. It is used when no redis
// address is configured and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]pendingCode
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]pendingCode), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, userID, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[userID] = pendingCode{code: code, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Verify(_ context.Context, userID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.codes[userID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(pending.expires) {
		delete(s.codes, userID)
		return false, nil
	}
	if !codesEqual(pending.code, code) {
		pending.attempts++
		if pending.attempts >= MaxAttempts {
			delete(s.codes, userID)
		} else {
			s.codes[userID] = pending
		}
		return false, nil
	}
	delete(s.codes, userID)
	return true, nil
}
