package passport

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/passport/pkg/cookie"
	"github.com/dmitrymomot/passport/pkg/logger"
	"github.com/dmitrymomot/passport/pkg/session"
)

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	cookies    *cookie.Manager
	sessions   *session.Manager
}

// Option configures New and NewTransport.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client. Config.Timeout is not applied
// to a supplied client. The client is copied and its CheckRedirect
// replaced, so redirects are never followed.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithCookieManager sets the cookie manager used for the credential cookie
// and, when no session manager is given, for the session cookie.
func WithCookieManager(m *cookie.Manager) Option {
	return func(o *options) {
		o.cookies = m
	}
}

// WithSessionManager sets where the account uid is kept between requests.
// The manager is owned by the caller and not closed by Service.Close.
func WithSessionManager(m *session.Manager) Option {
	return func(o *options) {
		o.sessions = m
	}
}

func buildOptions(cfg Config, opts []Option) options {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.Timeout}
	} else {
		c := *o.httpClient
		o.httpClient = &c
	}
	// A redirect is reported as a non-200 status. Following it could leave
	// TLS and would carry the credential in the query to another host.
	o.httpClient.CheckRedirect = noRedirect
	o.logger = o.logger.With(logger.Component("passport"))
	return o
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
