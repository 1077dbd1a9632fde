package session

import (
	"sync"
	"time"
)

// SSOSession is a connected SSO login: the access token minted by the
// device flow plus the identity-provider region that issued it.
type SSOSession struct {
	SessionName string
	Region      string
	AccessToken string
	ExpiresAt   time.Time
}

// Store is a thread-safe in-memory session cache. Sessions are lost on
// server restart.
type Store struct {
	mu   sync.RWMutex
	data map[string]SSOSession
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{data: make(map[string]SSOSession)}
}

// Put stores a session under the given id, overwriting any previous one.
func (s *Store) Put(sessionID string, session SSOSession) {
	s.mu.Lock()
	s.data[sessionID] = session
	s.mu.Unlock()
}

// Get returns the session for the given id. An expired session is evicted
// and reported as absent; eviction is lazy, driven entirely by reads.
func (s *Store) Get(sessionID string) (SSOSession, bool) {
	s.mu.RLock()
	session, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return SSOSession{}, false
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		s.Delete(sessionID)
		return SSOSession{}, false
	}
	return session, true
}

// Delete removes the session for the given id, if present.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
}
