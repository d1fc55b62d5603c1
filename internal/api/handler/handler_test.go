package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/core/service"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs and helpers
// ---------------------------------------------------------------------------

type stubAuthService struct {
	loginFn func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	return s.loginFn(ctx, in)
}

type stubBackend struct {
	forwardFn func(ctx context.Context, req ports.ForwardRequest) (*ports.ForwardResponse, error)
	pingErr   error
}

func (s *stubBackend) Forward(ctx context.Context, req ports.ForwardRequest) (*ports.ForwardResponse, error) {
	return s.forwardFn(ctx, req)
}

func (s *stubBackend) Ping(context.Context) error { return s.pingErr }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newStore returns a resolved session; role "" means logged out.
func newStore(t *testing.T, role domain.Role) *service.SessionStore {
	t.Helper()
	store := service.NewSessionStore("client-1", memory.NewSessionStorage(time.Hour), nil, zerolog.Nop())
	if role == "" {
		store.Initialize(context.Background())
		return store
	}
	user := &domain.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Role: role}
	if err := store.Login(context.Background(), user, "session-token"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return store
}

func newRequest(e *echo.Echo, method, target, body string, store *service.SessionStore) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if store != nil {
		c.Set(middleware.SessionContextKey, store)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
