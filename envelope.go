package passport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the decoded JSON object of a successful response.
type Envelope map[string]json.RawMessage

// Has reports whether field is present and not null.
func (e Envelope) Has(field string) bool {
	raw, ok := e[field]
	return ok && string(raw) != "null"
}

// Err returns an ERR_RESPONSE error carrying the remote message when the
// envelope has an "error" field. A null error counts as absent.
func (e Envelope) Err() error {
	if !e.Has("error") {
		return nil
	}
	raw := e["error"]
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		msg = string(raw)
	}
	return &Error{Code: CodeResponse, Message: msg, StatusCode: http.StatusOK}
}

// String returns a string field.
func (e Envelope) String(field string) (string, error) {
	var s string
	if err := e.field(field, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Bool returns a boolean field.
func (e Envelope) Bool(field string) (bool, error) {
	var b bool
	if err := e.field(field, &b); err != nil {
		return false, err
	}
	return b, nil
}

func (e Envelope) field(name string, dst any) error {
	if !e.Has(name) {
		return &Error{Code: CodeResponse, Message: fmt.Sprintf("response has no %q field", name), StatusCode: http.StatusOK}
	}
	if err := json.Unmarshal(e[name], dst); err != nil {
		return &Error{Code: CodeResponse, Message: fmt.Sprintf("response field %q has unexpected type", name), StatusCode: http.StatusOK, Err: err}
	}
	return nil
}
