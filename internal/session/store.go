package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	settings *Settings
	lastSeen time.Time
}

// Store keeps per-session display settings in memory. Sessions are keyed by
// uuid; each session's settings are exclusively owned by that session and
// disappear when it expires. Nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]*entry
	now      func() time.Time
}

// NewStore creates a session store whose sessions expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*entry),
		now:      time.Now,
	}
}

// GetOrCreate returns the settings for the session, creating them with
// defaults on first sight, and refreshes the session's expiry clock.
func (s *Store) GetOrCreate(id uuid.UUID) *Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &entry{settings: DefaultSettings()}
		s.sessions[id] = e
		log.Printf("[session] created session %s", id)
	}
	e.lastSeen = s.now()
	return e.settings
}

// Reset restores the session's settings to defaults, keeping the session.
func (s *Store) Reset(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		e.settings.Reset()
		e.lastSeen = s.now()
	}
}

// Delete ends the session and discards its settings.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle longer than the store TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[session] swept %d expired sessions", removed)
	}
	return removed
}

// StartSweeper runs Sweep periodically until stop is closed.
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
