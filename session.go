package flock

import (
	"sync"

	"github.com/256dpi/flock/band"
)

// Session holds the identity of the authenticated user. It is set on sign in
// or sign up, cleared on sign out and passed explicitly to every component
// that needs access to the current identity.
type Session struct {
	mutex    sync.RWMutex
	identity *band.Identity
	token    string
}

// NewSession creates a new unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Set will store the provided identity and token.
func (s *Session) Set(identity *band.Identity, token string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.identity = identity
	s.token = token
}

// Apply will replace the cached identity while keeping the token.
func (s *Session) Apply(identity *band.Identity) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.identity = identity
}

// Clear will remove the identity and token.
func (s *Session) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.identity = nil
	s.token = ""
}

// Active returns whether the session holds an identity.
func (s *Session) Active() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.identity != nil
}

// Identity returns a copy of the cached identity or nil if the session is
// unauthenticated.
func (s *Session) Identity() *band.Identity {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	// check identity
	if s.identity == nil {
		return nil
	}

	// copy identity
	identity := *s.identity

	return &identity
}

// Token returns the session token.
func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}
