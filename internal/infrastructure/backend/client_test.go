package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

func TestNewClient_RejectsBadURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "ftp://backend"}); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestClient_URL(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://backend:5000/api/"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := c.URL("/jobs", "page=2&q=go"); got != "http://backend:5000/api/jobs?page=2&q=go" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestClient_ForwardRelaysHeadersAndBody(t *testing.T) {
	var got *http.Request
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL + "/api"})
	h := http.Header{}
	h.Set("Authorization", "Bearer t")
	h.Set("Content-Type", "application/json")
	h.Set("Cookie", "portal_sid=secret")
	h.Set(TenantHeader, "acme")

	resp, err := c.Forward(context.Background(), ports.ForwardRequest{
		Method:   http.MethodPost,
		Path:     "/auth/candidate/login",
		RawQuery: "x=1",
		Header:   h,
		Body:     []byte(`{"email":"a"}`),
	})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || string(resp.Body) != `{"success":true}` {
		t.Fatalf("unexpected response %d %s", resp.StatusCode, resp.Body)
	}
	if got.URL.Path != "/api/auth/candidate/login" || got.URL.RawQuery != "x=1" {
		t.Fatalf("unexpected upstream url %s", got.URL)
	}
	if got.Header.Get("Authorization") != "Bearer t" || got.Header.Get(TenantHeader) != "acme" {
		t.Fatalf("headers not forwarded: %v", got.Header)
	}
	if got.Header.Get("Cookie") != "" {
		t.Fatalf("cookies must not reach the backend")
	}
	if got.Header.Get("Cache-Control") != "no-cache" {
		t.Fatalf("expected no-cache request")
	}
	if gotBody != `{"email":"a"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestClient_ForwardSendsEmptyTenant(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(TenantHeader)]
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.Forward(context.Background(), ports.ForwardRequest{Method: http.MethodGet, Path: "/jobs", Header: http.Header{}}); err != nil {
		t.Fatalf("forward: %v", err)
	}
	if !present {
		t.Fatalf("tenant header should be sent even when empty")
	}
}

func TestClient_ForwardTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, _ := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := c.Forward(context.Background(), ports.ForwardRequest{Method: http.MethodGet, Path: "/jobs", Header: http.Header{}}); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestClient_Ping(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected health path %s", r.URL.Path)
		}
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	status = http.StatusBadGateway
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping failure on 502")
	}
}

func TestClient_ForwardRejectsOversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("big") == "1" {
			_, _ = w.Write([]byte(`{"data":"0123456789"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":"0123"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL, MaxResponseBytes: 16})

	_, err := c.Forward(context.Background(), ports.ForwardRequest{Method: http.MethodGet, Path: "/jobs", RawQuery: "big=1", Header: http.Header{}})
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}

	resp, err := c.Forward(context.Background(), ports.ForwardRequest{Method: http.MethodGet, Path: "/jobs", Header: http.Header{}})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if string(resp.Body) != `{"data":"0123"}` {
		t.Fatalf("body at the limit must be relayed whole, got %q", resp.Body)
	}
}
