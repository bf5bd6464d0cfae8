package app

import "sync"

// SessionStore remembers which song labels were already announced during
// one listener session. It is never persisted.
type SessionStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{seen: make(map[string]struct{})}
}

// Add records label and reports whether it was new
func (s *SessionStore) Add(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[label]; ok {
		return false
	}
	s.seen[label] = struct{}{}
	return true
}

// Contains reports whether label was already recorded
func (s *SessionStore) Contains(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[label]
	return ok
}

// Len returns the number of recorded labels
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Reset forgets every label
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}
