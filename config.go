package passport

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultBaseURL is the production endpoint of the account service.
const DefaultBaseURL = "https://passport.kurtisknodel.com/api/"

// Config holds client settings. Fields are populated from the environment
// by pkg/config.
type Config struct {
	BaseURL      string        `env:"PASSPORT_BASE_URL" envDefault:"https://passport.kurtisknodel.com/api/"`
	Timeout      time.Duration `env:"PASSPORT_TIMEOUT" envDefault:"10s"`
	CookieName   string        `env:"PASSPORT_COOKIE_NAME" envDefault:"passport-key"`
	CookieMaxAge time.Duration `env:"PASSPORT_COOKIE_MAX_AGE" envDefault:"720h"`
	CookieDomain string        `env:"PASSPORT_COOKIE_DOMAIN"`
	// SessionKey names the session entry holding the account uid.
	SessionKey string `env:"PASSPORT_SESSION_KEY" envDefault:"passport-uid"`
	// CacheSize bounds the per-client value cache.
	CacheSize int    `env:"PASSPORT_CACHE_SIZE" envDefault:"256"`
	UserAgent string `env:"PASSPORT_USER_AGENT" envDefault:"passport-go/1.0"`
}

// DefaultConfig returns the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      10 * time.Second,
		CookieName:   "passport-key",
		CookieMaxAge: 30 * 24 * time.Hour,
		SessionKey:   "passport-uid",
		CacheSize:    256,
		UserAgent:    "passport-go/1.0",
	}
}

// Validate checks the config. A base URL without https fails with
// ErrInsecureBaseURL.
func (c Config) Validate() error {
	_, err := c.baseURL()
	if err != nil {
		return err
	}
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	case c.CacheSize <= 0:
		return fmt.Errorf("%w: cache size must be positive", ErrInvalidConfig)
	case c.CookieName == "":
		return fmt.Errorf("%w: empty cookie name", ErrInvalidConfig)
	case c.SessionKey == "":
		return fmt.Errorf("%w: empty session key", ErrInvalidConfig)
	case c.CookieMaxAge < time.Second:
		return fmt.Errorf("%w: cookie max age must be at least one second", ErrInvalidConfig)
	}
	return nil
}

func (c Config) baseURL() (*url.URL, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "https" {
		return nil, ErrInsecureBaseURL
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: base url has no host", ErrInvalidConfig)
	}
	return u, nil
}
