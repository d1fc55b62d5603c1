package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	// defaultMaxResponse caps how much of a backend response is buffered.
	defaultMaxResponse = 10 << 20
)

// ErrResponseTooLarge is returned when a backend response exceeds the
// configured cap. The response is never relayed cut short.
var ErrResponseTooLarge = errors.New("backend: response body too large")

// forwardedHeaders are the only request headers relayed to the backend.
var forwardedHeaders = []string{
	"Authorization",
	"Content-Type",
	"Accept",
	"Accept-Language",
}

// TenantHeader is always sent, empty when the caller named no tenant.
const TenantHeader = domain.TenantHeader

// Config captures the settings of the backend client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HealthPath string
	// MaxResponseBytes defaults to 10 MiB.
	MaxResponseBytes int64
}

// Client relays requests to the backend REST API. It never caches.
type Client struct {
	base        *url.URL
	healthPath  string
	maxResponse int64
	http        *http.Client
}

// NewClient validates cfg and returns a Client with a bounded timeout.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend: base url must be http(s), got %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	health := cfg.HealthPath
	if health == "" {
		health = "/health"
	}
	maxResponse := cfg.MaxResponseBytes
	if maxResponse <= 0 {
		maxResponse = defaultMaxResponse
	}
	return &Client{
		base:        base,
		healthPath:  health,
		maxResponse: maxResponse,
		http:        &http.Client{Timeout: timeout},
	}, nil
}

// URL builds the backend URL for path and rawQuery.
func (c *Client) URL(path, rawQuery string) string {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = rawQuery
	return u.String()
}

// Forward sends req to the backend and reads the whole response. The tenant
// header is always sent, empty when the caller has none.
func (c *Client) Forward(ctx context.Context, req ports.ForwardRequest) (*ports.ForwardResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	out, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Path, req.RawQuery), body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	for _, h := range forwardedHeaders {
		if v := req.Header.Get(h); v != "" {
			out.Header.Set(h, v)
		}
	}
	out.Header.Set(TenantHeader, req.Header.Get(TenantHeader))
	out.Header.Set("Cache-Control", "no-cache")
	out.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(out)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponse+1))
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}
	if int64(len(data)) > c.maxResponse {
		return nil, fmt.Errorf("%w: %s %s exceeds %d bytes", ErrResponseTooLarge, req.Method, req.Path, c.maxResponse)
	}

	return &ports.ForwardResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Ping checks that the backend answers its health path with a non-5xx status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(c.healthPath, ""), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend ping: status %d", resp.StatusCode)
	}
	return nil
}
