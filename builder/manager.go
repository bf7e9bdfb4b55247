package builder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Manager tracks live sessions. Sessions unused for longer than the TTL are
// closed the next time the manager is touched.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Manager) Open(opts Options) (*Session, error) {
	session, err := NewSession(uuid.NewString(), opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	expired := m.evictExpired()
	m.sessions[session.ID()] = &entry{session: session, lastUsed: m.now()}
	m.mu.Unlock()

	closeAll(expired)
	return session, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	expired := m.evictExpired()
	e, ok := m.sessions[id]
	if ok {
		e.lastUsed = m.now()
	}
	m.mu.Unlock()

	closeAll(expired)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e.session, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.session.Close()
	return nil
}

// CloseAll ends every session; used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
}

func closeAll(sessions []*Session) {
	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evictExpired unregisters sessions past the TTL and returns them. It must
// be called with m.mu held; the caller closes them after unlocking, since
// Close waits for any save in flight.
func (m *Manager) evictExpired() []*Session {
	if m.ttl <= 0 {
		return nil
	}
	var expired []*Session
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, e.session)
		}
	}
	return expired
}
