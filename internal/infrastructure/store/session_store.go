package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/medstore/internal/i18n"
	"github.com/example/medstore/internal/storefront"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStoreInterface defines the interface for session storage
type SessionStoreInterface interface {
	// Create builds and stores a new session in the given language
	Create(lang i18n.Language) *storefront.Session

	// Get retrieves a session by id and refreshes its idle timer
	Get(id string) (*storefront.Session, error)

	// Delete removes a session
	Delete(id string)

	// Len is the number of live sessions
	Len() int
}

type sessionEntry struct {
	session  *storefront.Session
	lastSeen time.Time
}

// SessionStore keeps sessions in memory. Nothing survives a restart.
type SessionStore struct {
	mu      sync.RWMutex
	data    map[string]*sessionEntry
	deps    storefront.Deps
	idleTTL time.Duration
	now     func() time.Time
}

// NewSessionStore creates a store whose sessions expire after idleTTL without
// activity. A zero idleTTL disables expiry.
func NewSessionStore(deps storefront.Deps, idleTTL time.Duration) *SessionStore {
	return &SessionStore{
		data:    make(map[string]*sessionEntry),
		deps:    deps,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (ss *SessionStore) Create(lang i18n.Language) *storefront.Session {
	s := storefront.NewSession(uuid.New().String(), ss.deps, lang)

	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.data[s.ID] = &sessionEntry{session: s, lastSeen: ss.now()}
	return s
}

func (ss *SessionStore) Get(id string) (*storefront.Session, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	entry, ok := ss.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := ss.now()
	if ss.expired(entry, now) {
		delete(ss.data, id)
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = now
	return entry.session, nil
}

func (ss *SessionStore) Delete(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.data, id)
}

func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.data)
}

// Sweep drops every expired session and returns how many were removed
func (ss *SessionStore) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	now := ss.now()
	removed := 0
	for id, entry := range ss.data {
		if ss.expired(entry, now) {
			delete(ss.data, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every tick until ctx is done
func (ss *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if ss.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ss.Sweep(); n > 0 {
				log.Printf("[Store] Expired %d idle sessions", n)
			}
		}
	}
}

func (ss *SessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return ss.idleTTL > 0 && now.Sub(entry.lastSeen) > ss.idleTTL
}
