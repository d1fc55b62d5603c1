package ports

import (
	"context"
	"net/http"
)

// ForwardRequest describes a request to relay to the backend API.
type ForwardRequest struct {
	Method   string
	Path     string // relative to the backend base URL, e.g. "/jobs"
	RawQuery string
	Header   http.Header
	Body     []byte
}

// ForwardResponse is the backend's answer, body fully read.
type ForwardResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Backend forwards requests to the backend REST API.
type Backend interface {
	Forward(ctx context.Context, req ForwardRequest) (*ForwardResponse, error)
	Ping(ctx context.Context) error
}
