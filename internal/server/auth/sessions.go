package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state behind one token: the authenticated
// user (empty for anonymous share recipients) and the granted share ids.
// Grants are mutated and read by concurrent requests, so access goes
// through the locked methods below.
type Session struct {
	ID      string
	UserID  string
	Expires time.Time

	mu     sync.RWMutex
	grants map[string]struct{}
}

// Granted reports whether the session holds a grant for the share.
func (s *Session) Granted(shareID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.grants[shareID]
	return ok
}

// GrantedShares returns a snapshot of the granted share ids.
func (s *Session) GrantedShares() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.grants))
	for id := range s.grants {
		ids = append(ids, id)
	}
	return ids
}

func (s *Session) grant(shareID string) {
	s.mu.Lock()
	s.grants[shareID] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) revoke(shareID string) {
	s.mu.Lock()
	delete(s.grants, shareID)
	s.mu.Unlock()
}

// Registry is the in-memory session store. Sessions expire with their
// token; expired entries are dropped lazily on lookup.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{sessions: make(map[string]*Session), ttl: ttl}
}

// Create opens a session for userID. An empty userID opens an anonymous
// session, used by share recipients who never log in.
func (r *Registry) Create(userID string) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		UserID:  userID,
		Expires: time.Now().Add(r.ttl),
		grants:  make(map[string]struct{}),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the live session with the given id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	if time.Now().After(s.Expires) {
		delete(r.sessions, id)
		return nil
	}
	return s
}

// Grant records that the session unlocked the share.
func (r *Registry) Grant(sessionID, shareID string) {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if ok {
		s.grant(shareID)
	}
}

// RevokeShare removes a share's grants from every session, used when the
// owner deletes or replaces the share.
func (r *Registry) RevokeShare(shareID string) {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()
	for _, s := range sessions {
		s.revoke(shareID)
	}
}
