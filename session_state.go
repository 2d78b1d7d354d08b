package passport

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrymomot/passport/pkg/session"
)

// SessionStore is the server-side state where the account uid is cached.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemorySession is a map backed SessionStore.
type MemorySession struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{values: make(map[string]string)}
}

func (m *MemorySession) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemorySession) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemorySession) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// ManagedSession stores values in the session.Manager session of one
// request. Reads never create a session; the first write does.
type ManagedSession struct {
	manager *session.Manager
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	current *session.Session
}

// NewManagedSession binds a session manager to one request. A session
// already attached to the request context by session.Manager.Middleware
// is reused.
func NewManagedSession(manager *session.Manager, w http.ResponseWriter, r *http.Request) *ManagedSession {
	s := &ManagedSession{manager: manager, w: w, r: r}
	if current, ok := session.FromContext(r.Context()); ok {
		s.current = current
	}
	return s
}

func (s *ManagedSession) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		current, err := s.manager.Get(ctx, s.r)
		if err != nil {
			return "", false
		}
		s.current = current
	}
	return s.current.GetString(key)
}

func (s *ManagedSession) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		current, err := s.manager.Ensure(ctx, s.w, s.r)
		if err != nil {
			return err
		}
		s.current = current
	}
	s.current.Set(key, value)
	return s.manager.Save(ctx, s.current)
}

func (s *ManagedSession) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		current, err := s.manager.Get(ctx, s.r)
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionExpired) {
			return nil
		}
		if err != nil {
			return err
		}
		s.current = current
	}
	s.current.Delete(key)
	return s.manager.Save(ctx, s.current)
}
