package cookie

import (
	"net/http"
	"time"
)

// Options are the attributes written with a cookie. A Manager holds one set
// as its defaults; each Set or Delete call may layer Option values on top.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int // seconds; 0 means a browser-session cookie
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option adjusts Options.
type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

// WithDomain scopes the cookie to domain and its subdomains. Empty keeps it
// host-only.
func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds. Zero makes a session cookie.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

// WithLifetime is WithMaxAge for a duration, truncated to whole seconds.
// A positive duration under one second rounds up so the cookie is not
// turned into a session cookie by accident.
func WithLifetime(d time.Duration) Option {
	seconds := int(d / time.Second)
	if d > 0 && seconds == 0 {
		seconds = 1
	}
	return WithMaxAge(seconds)
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

// apply returns base with opts layered on; base itself is left alone.
func apply(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
