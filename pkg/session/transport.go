package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/passport/pkg/cookie"
)

// Transport defines how session tokens are transmitted between client and server
type Transport interface {
	// GetToken extracts the session token from the request
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session token in the response
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the session token from the response
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport implements Transport using cookies. Tokens are signed
// when the cookie manager has secrets.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	options    []cookie.Option
}

// NewCookieTransport creates a new cookie-based transport
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		options:    opts,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	var (
		token string
		err   error
	)
	if t.cookieMgr.HasSecrets() {
		token, err = t.cookieMgr.GetSigned(r, t.cookieName)
	} else {
		token, err = t.cookieMgr.Get(r, t.cookieName)
	}
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{cookie.WithLifetime(ttl)}, t.options...)
	if t.cookieMgr.HasSecrets() {
		return t.cookieMgr.SetSigned(w, t.cookieName, token, opts...)
	}
	return t.cookieMgr.Set(w, t.cookieName, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName, t.options...)
	return nil
}
