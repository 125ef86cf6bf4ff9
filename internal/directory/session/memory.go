package session

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/directory/pkg/cryptox"
)

// MemoryStore keeps sessions in process. Sessions are lost on restart and
// are not shared between instances.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	idle     time.Duration
	now      func() time.Time
}

func NewMemoryStore(idle time.Duration) *MemoryStore {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		idle:     idle,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, s Session) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	now := m.now()
	s.CreatedAt = now
	s.LastActivity = now

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}

	now := m.now()
	if now.Sub(s.LastActivity) > m.idle {
		delete(m.sessions, token)
		return Session{}, ErrNotFound
	}

	s.LastActivity = now
	m.sessions[token] = s
	return s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Sweep(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for token, s := range m.sessions {
		if now.Sub(s.LastActivity) > m.idle {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
