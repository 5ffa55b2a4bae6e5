package session

import (
	"sync"
	"time"

	"github.com/liralabs/lirabot/internal/model"
)

// Store owns the session table. Insertion and expiry take a coarse lock;
// within a session, callers serialize via the session's own lock.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	exchanges int           // history capacity per session
	ttl       time.Duration // idle lifetime before eviction
	lastSweep time.Time

	now func() time.Time // swappable clock for tests
}

// NewStore returns a session store with the given history capacity and TTL.
func NewStore(historyExchanges int, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		sessions:  make(map[string]*Session),
		exchanges: historyExchanges,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// GetOrCreate returns the customer's session, creating it on first reference.
// A lazy expiry sweep runs first when one hasn't run within the TTL, so the
// table is not scanned on every call.
func (st *Store) GetOrCreate(customerID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()

	s, ok := st.sessions[customerID]
	if !ok {
		s = newSession(customerID, st.exchanges, st.now())
		st.sessions[customerID] = s
	}
	return s
}

// Get returns the customer's session, or nil if none exists.
func (st *Store) Get(customerID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[customerID]
}

// Stats returns the running totals for a customer. Unknown customers get a
// zero-valued stats record; the contract is the same on every path.
func (st *Store) Stats(customerID string) model.SessionStats {
	st.mu.Lock()
	s, ok := st.sessions[customerID]
	st.mu.Unlock()

	if !ok {
		return model.SessionStats{}
	}

	s.Lock()
	defer s.Unlock()
	return s.Stats()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweepLocked evicts sessions idle past the TTL. Runs at most once per TTL
// period; expired history and totals are permanently discarded.
func (st *Store) sweepLocked() {
	now := st.now()
	if now.Sub(st.lastSweep) < st.ttl {
		return
	}

	for id, s := range st.sessions {
		if now.Sub(s.StartedAt) > st.ttl {
			delete(st.sessions, id)
		}
	}
	st.lastSweep = now
}
