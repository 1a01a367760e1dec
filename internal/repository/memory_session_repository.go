package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"quiz-forge/internal/domain"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps session records in process memory. It is used
// when no Redis address is configured. Records are stored encoded so callers
// never share a *Session with the store.
type MemorySessionRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemorySessionRepository) Save(_ context.Context, record *domain.SessionRecord, ttl time.Duration) error {
	if record == nil || record.Session == nil || record.Session.ID == "" {
		return domain.NewInvalidInputError("session record must carry a session with an ID")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return domain.NewInternalError("Failed to encode quiz session", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[record.Session.ID] = entry
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, sessionID string) (*domain.SessionRecord, error) {
	r.mu.Lock()
	entry, ok := r.entries[sessionID]
	if ok && !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.entries, sessionID)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	var record domain.SessionRecord
	if err := json.Unmarshal(entry.data, &record); err != nil {
		return nil, domain.NewInternalError("Failed to decode quiz session", err)
	}
	return &record, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
	return nil
}

var _ domain.SessionRepository = (*MemorySessionRepository)(nil)
