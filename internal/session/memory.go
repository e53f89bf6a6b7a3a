package session

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is an in-process session store for development and tests. It
// holds records in a map guarded by a mutex and prunes lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]memoryRecord),
		ttl:     validTTL(ttl),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	id, err := NewID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = memoryRecord{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (uint, error) {
	if id == "" {
		return NoUser, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return NoUser, nil
	}
	if s.now().After(record.expiresAt) {
		delete(s.records, id)
		return NoUser, nil
	}

	record.expiresAt = s.now().Add(s.ttl)
	s.records[id] = record
	return record.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
