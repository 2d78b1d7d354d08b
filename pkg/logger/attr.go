package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ErrorCode records a symbolic error code under "error_code".
func ErrorCode(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("error_code", code)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Method records an HTTP method under "method".
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Endpoint records a remote API endpoint under "endpoint".
func Endpoint(endpoint string) slog.Attr {
	return slog.String("endpoint", endpoint)
}

// StatusCode records an HTTP status under "status". Zero means no response
// was received and yields an empty Attr.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status", code)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Field records an account data field name under "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// UserID records the account identifier under "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}
