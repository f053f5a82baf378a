package firebase

import (
	"sync"

	"digitalwardrobe/internal/domain/service"
)

// SessionManager is the cached local session state. Subscribers get a
// conflated stream of session-or-nil values: the latest value wins when
// a subscriber lags.
type SessionManager struct {
	mu        sync.Mutex
	current   *service.Session
	nextID    int
	listeners map[int]chan *service.Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		listeners: make(map[int]chan *service.Session),
	}
}

func (m *SessionManager) Current() *service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *SessionManager) Set(session *service.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = session
	for _, ch := range m.listeners {
		push(ch, session)
	}
}

func (m *SessionManager) SignOut() {
	m.Set(nil)
}

// Subscribe fires once immediately with the current value and again on
// every sign-in/sign-out. The returned func detaches the listener and
// closes the channel; calling it more than once is safe.
func (m *SessionManager) Subscribe() (<-chan *service.Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	ch := make(chan *service.Session, 1)
	ch <- m.current
	m.listeners[id] = ch

	unsubscribe := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if ch, ok := m.listeners[id]; ok {
			delete(m.listeners, id)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// push conflates: only the manager sends on listener channels, and only
// under the lock, so draining one slot always leaves room.
func push(ch chan *service.Session, session *service.Session) {
	select {
	case ch <- session:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- session
	}
}
