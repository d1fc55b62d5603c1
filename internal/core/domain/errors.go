package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTenantRequired       = errors.New("x-tenant-subdomain header is required")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSessionStorage       = errors.New("session storage unavailable")
	ErrBackendUnavailable   = errors.New("backend unavailable")
)

// UpstreamError is a non-success answer from the backend, kept with its
// status so it can be relayed as is.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// UpstreamMessage extracts the human message of a backend error body: the
// JSON "message" field, a bare JSON string, or else the raw text. An empty
// body falls back to the status text.
func UpstreamMessage(status int, body []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := strings.TrimSpace(env.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(env.Error); msg != "" {
			return msg
		}
	}
	var str string
	if err := json.Unmarshal(body, &str); err == nil && strings.TrimSpace(str) != "" {
		return strings.TrimSpace(str)
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && !strings.HasPrefix(msg, "{") {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
