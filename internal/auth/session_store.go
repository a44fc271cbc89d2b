package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"agenda/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Store(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps a server-side record per login session in Redis. The
// session cookie carries a signed token; this record makes logout an actual
// revocation instead of relying on the cookie expiring.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Store records a session with TTL.
func (s *SessionStore) Store(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID
	return s.cache.Set(ctx, key, []byte(strconv.FormatUint(uint64(userID), 10)), ttl)
}

// Get returns the user id for a live session.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (uint, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, fmt.Errorf("session not found")
	}

	userID, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session record: %w", err)
	}
	return uint(userID), nil
}

// Delete revokes a session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.cache.Delete(ctx, key)
}
