package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
)

// CacheSessionRepository stores session records as JSON in a domain.Cache,
// normally Redis, keyed by cache.SessionKey.
type CacheSessionRepository struct {
	cache domain.Cache
}

func NewCacheSessionRepository(c domain.Cache) (*CacheSessionRepository, error) {
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for CacheSessionRepository")
	}
	return &CacheSessionRepository{cache: c}, nil
}

func (r *CacheSessionRepository) Save(ctx context.Context, record *domain.SessionRecord, ttl time.Duration) error {
	if record == nil || record.Session == nil || record.Session.ID == "" {
		return domain.NewInvalidInputError("session record must carry a session with an ID")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return domain.NewInternalError("Failed to encode quiz session", err)
	}
	if err := r.cache.Set(ctx, cache.SessionKey(record.Session.ID), string(data), ttl); err != nil {
		return domain.NewInternalError("Failed to store quiz session", err)
	}
	return nil
}

func (r *CacheSessionRepository) Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	raw, err := r.cache.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("Failed to load quiz session", err)
	}

	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, domain.NewInternalError("Failed to decode quiz session", err)
	}
	if record.Session == nil {
		return nil, domain.NewInternalError("Stored quiz session is empty", nil)
	}
	return &record, nil
}

func (r *CacheSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cache.SessionKey(sessionID)); err != nil {
		return domain.NewInternalError("Failed to delete quiz session", err)
	}
	return nil
}

var _ domain.SessionRepository = (*CacheSessionRepository)(nil)
