package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one shopper's state: their cart and whether they passed the
// admin login. Callers hold Lock for the duration of an operation.
type Session struct {
	ID   string
	Cart Cart

	mu     sync.Mutex
	admin  bool
	placed []string

	lastSeen time.Time // guarded by the store's mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) IsAdmin() bool { return s.admin }

// Remember records an order placed from this session so its confirmation
// page stays viewable.
func (s *Session) Remember(orderID string) { s.placed = append(s.placed, orderID) }

func (s *Session) Placed(orderID string) bool {
	for _, id := range s.placed {
		if id == orderID {
			return true
		}
	}
	return false
}

// DefaultSessionIdle is how long an untouched session survives.
const DefaultSessionIdle = 2 * time.Hour

// SessionStore keeps sessions in memory. A session idle for longer than
// IdleTimeout is treated as unknown and swept out when new sessions are made.
type SessionStore struct {
	IdleTimeout time.Duration
	Now         func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		IdleTimeout: DefaultSessionIdle,
		Now:         time.Now,
		sessions:    map[string]*Session{},
	}
}

func (st *SessionStore) now() time.Time {
	if st.Now == nil {
		return time.Now()
	}
	return st.Now()
}

func (st *SessionStore) expired(s *Session, now time.Time) bool {
	return st.IdleTimeout > 0 && now.Sub(s.lastSeen) > st.IdleTimeout
}

// New creates a session under a fresh random id.
func (st *SessionStore) New() *Session {
	now := st.now()
	s := &Session{ID: uuid.NewString(), lastSeen: now}
	st.mu.Lock()
	st.sweepLocked(now)
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session for id and marks it as seen, or nil.
func (st *SessionStore) Get(id string) *Session {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.sessions[id]
	if s == nil {
		return nil
	}
	if st.expired(s, now) {
		delete(st.sessions, id)
		return nil
	}
	s.lastSeen = now
	return s
}

// Ensure returns the session for id, creating a new one (with a new id) when
// id is empty, unknown or expired.
func (st *SessionStore) Ensure(id string) *Session {
	if id != "" {
		if s := st.Get(id); s != nil {
			return s
		}
	}
	return st.New()
}

// Sweep drops every expired session and reports how many went.
func (st *SessionStore) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastSweep = time.Time{}
	return st.sweepLocked(now)
}

// sweepLocked scans at most once a minute so session creation stays cheap.
func (st *SessionStore) sweepLocked(now time.Time) int {
	if st.IdleTimeout <= 0 || now.Sub(st.lastSweep) < time.Minute {
		return 0
	}
	st.lastSweep = now
	n := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
