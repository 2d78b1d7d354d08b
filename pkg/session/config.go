package session

import "time"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout is extended on every Save; MaxLifetime caps it.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"720h"`

	// CleanupInterval for expired sessions in the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		IdleTimeout:     2 * time.Hour,
		MaxLifetime:     30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		SecureCookies:   true,
	}
}

// expiry returns the next expiry: now+idle, but never past createdAt+max.
func (c Config) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(c.IdleTimeout)
	if c.MaxLifetime > 0 {
		if maxExpiry := createdAt.Add(c.MaxLifetime); maxExpiry.Before(idle) {
			return maxExpiry
		}
	}
	return idle
}
