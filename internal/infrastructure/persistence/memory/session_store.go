// Package memory provides an in-process session store. It backs tests and
// redis-less development runs; sessions do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/ports/outbound"
)

type sessionEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// SessionStore implements the session store interface with a mutex-guarded map
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session for the user and returns its opaque token
func (s *SessionStore) Create(_ context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token to the signed-in user id
func (s *SessionStore) Get(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return uuid.Nil, outbound.ErrSessionNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return uuid.Nil, outbound.ErrSessionNotFound
	}
	return entry.userID, nil
}

// Delete destroys the session; unknown tokens are a no-op
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
