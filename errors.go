package passport

import (
	"errors"
	"fmt"
	"net/http"
)

// Symbolic error codes reported by the client.
const (
	CodeLogin          = "ERR_LOGIN"
	CodeLandingNoKey   = "ERR_LANDING_NO_KEY"
	CodeAdd            = "ERR_ADD"
	CodeDecode         = "ERR_DECODE"
	CodeEncode         = "ERR_ENCODE"
	CodeRequestMethod  = "ERR_REQUEST_METHOD"
	CodeRequestContent = "ERR_REQUEST_CONTENT"
	CodeRequest        = "ERR_REQUEST"
	CodeResponse       = "ERR_RESPONSE"
)

// Sentinels for errors.Is. Returned errors carry their own message and
// cause but match the sentinel with the same code.
var (
	ErrLogin          = &Error{Code: CodeLogin, Message: "not logged in"}
	ErrLandingNoKey   = &Error{Code: CodeLandingNoKey, Message: "missing key"}
	ErrAdd            = &Error{Code: CodeAdd, Message: "key already exists"}
	ErrDecode         = &Error{Code: CodeDecode, Message: "malformed wire value"}
	ErrEncode         = &Error{Code: CodeEncode, Message: "value cannot be encoded"}
	ErrRequestMethod  = &Error{Code: CodeRequestMethod, Message: "method not supported"}
	ErrRequestContent = &Error{Code: CodeRequestContent, Message: "missing body and query"}
	ErrRequest        = &Error{Code: CodeRequest, Message: "failed to make request"}
	ErrResponse       = &Error{Code: CodeResponse, Message: "invalid response"}
)

// Configuration errors.
var (
	ErrInvalidConfig   = errors.New("passport: invalid config")
	ErrInsecureBaseURL = errors.New("passport: base url must use https")
)

// Error is the single error type returned by client operations.
type Error struct {
	Code    string
	Message string
	// StatusCode is the HTTP status of the remote response, zero when the
	// failure happened before a response was received.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("passport: [%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("passport: [%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// CodeOf returns the symbolic code of err, or "" when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether the remote service answered 404. The service
// reports a missing field with a 200 envelope error, so this is only true
// for an explicit 404 status.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeResponse && e.StatusCode == http.StatusNotFound
}
