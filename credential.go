package passport

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrymomot/passport/pkg/cookie"
)

// CredentialStore holds the opaque credential ("key") issued by the
// account service.
type CredentialStore interface {
	// Key returns the stored credential. An empty value counts as absent.
	Key(ctx context.Context) (string, bool)
	SetKey(ctx context.Context, key string) error
	ClearKey(ctx context.Context) error
}

// CookieCredentials keeps the credential in a cookie of the current
// request. After SetKey or ClearKey, Key reflects the new state for the
// rest of the request.
type CookieCredentials struct {
	cookies *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	name    string
	opts    []cookie.Option

	mu       sync.Mutex
	override *string
}

// NewCookieCredentials binds the credential cookie to one request.
func NewCookieCredentials(cookies *cookie.Manager, w http.ResponseWriter, r *http.Request, name string, opts ...cookie.Option) *CookieCredentials {
	return &CookieCredentials{cookies: cookies, w: w, r: r, name: name, opts: opts}
}

func (c *CookieCredentials) Key(_ context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.override != nil {
		return *c.override, *c.override != ""
	}
	key, err := c.cookies.Get(c.r, c.name)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func (c *CookieCredentials) SetKey(_ context.Context, key string) error {
	if err := c.cookies.Set(c.w, c.name, key, c.opts...); err != nil {
		return err
	}
	c.mu.Lock()
	c.override = &key
	c.mu.Unlock()
	return nil
}

func (c *CookieCredentials) ClearKey(_ context.Context) error {
	c.cookies.Delete(c.w, c.name, c.opts...)
	empty := ""
	c.mu.Lock()
	c.override = &empty
	c.mu.Unlock()
	return nil
}

// MemoryCredentials is an in-process CredentialStore for tests and
// command line tools.
type MemoryCredentials struct {
	mu  sync.RWMutex
	key string
}

// NewMemoryCredentials returns a store holding key, which may be empty.
func NewMemoryCredentials(key string) *MemoryCredentials {
	return &MemoryCredentials{key: key}
}

func (m *MemoryCredentials) Key(_ context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, m.key != ""
}

func (m *MemoryCredentials) SetKey(_ context.Context, key string) error {
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

func (m *MemoryCredentials) ClearKey(_ context.Context) error {
	return m.SetKey(context.Background(), "")
}
