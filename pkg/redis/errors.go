package redis

import "errors"

// Errors returned by Connect and Healthcheck. The driver error, when there
// is one, is joined to them.
var (
	ErrEmptyURL          = errors.New("redis.empty_url")
	ErrInvalidURL        = errors.New("redis.invalid_url")
	ErrNotReady          = errors.New("redis.not_ready")
	ErrHealthcheckFailed = errors.New("redis.healthcheck_failed")
)
