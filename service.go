package passport

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/passport/pkg/cookie"
	"github.com/dmitrymomot/passport/pkg/session"
)

// Service holds everything shared between requests: the transport, the
// cookie and session managers and the logger. It is safe for concurrent
// use; per-visitor state lives in the Clients it builds.
type Service struct {
	cfg          Config
	transport    *Transport
	cookies      *cookie.Manager
	cookieOpts   []cookie.Option
	sessions     *session.Manager
	ownsSessions bool
	logger       *slog.Logger
}

// New validates cfg and builds a Service. Without WithSessionManager an
// in-memory session manager is created and released by Close.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, _ := cfg.baseURL()
	o := buildOptions(cfg, opts)

	if o.cookies == nil {
		cookies, err := cookie.New(nil)
		if err != nil {
			return nil, err
		}
		o.cookies = cookies
	}

	s := &Service{
		cfg:       cfg,
		transport: newTransport(base, cfg.UserAgent, o),
		cookies:   o.cookies,
		sessions:  o.sessions,
		logger:    o.logger,
		cookieOpts: []cookie.Option{
			cookie.WithPath("/"),
			cookie.WithSecure(true),
			cookie.WithHTTPOnly(true),
			cookie.WithSameSite(http.SameSiteLaxMode),
			cookie.WithLifetime(cfg.CookieMaxAge),
		},
	}
	if cfg.CookieDomain != "" {
		s.cookieOpts = append(s.cookieOpts, cookie.WithDomain(cfg.CookieDomain))
	}
	if s.sessions == nil {
		s.sessions = session.New(session.WithCookieManager(o.cookies))
		s.ownsSessions = true
	}
	return s, nil
}

// Config returns the validated configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Transport returns the shared transport.
func (s *Service) Transport() *Transport {
	return s.transport
}

// Sessions returns the session manager keeping account uids.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// Client builds a client over explicit stores.
func (s *Service) Client(creds CredentialStore, sess SessionStore) *Client {
	return NewClient(s.transport, creds, sess, s.cfg)
}

// Credentials binds the credential cookie to a request.
func (s *Service) Credentials(w http.ResponseWriter, r *http.Request) *CookieCredentials {
	return NewCookieCredentials(s.cookies, w, r, s.cfg.CookieName, s.cookieOpts...)
}

// ForRequest builds a client backed by the request's cookies and session.
func (s *Service) ForRequest(w http.ResponseWriter, r *http.Request) *Client {
	return s.Client(s.Credentials(w, r), NewManagedSession(s.sessions, w, r))
}

// Close releases the session manager created by New.
func (s *Service) Close() error {
	if s.ownsSessions {
		return s.sessions.Close()
	}
	return nil
}
