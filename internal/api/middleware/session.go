package middleware

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/core/service"
)

// SessionContextKey is where Session stores the request's session store.
const SessionContextKey = "session"

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Storage    ports.SessionStorage
	// Observer is told about token changes (socket registry, notification state).
	Observer ports.TokenObserver
	Log      zerolog.Logger
}

// Session identifies the client by its session cookie, issuing one when it
// is missing, and puts an initialised SessionStore for that client into the
// context.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = "portal_sid"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if _, err := uuid.Parse(ck.Value); err == nil {
					sid = ck.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			store := service.NewSessionStore(ClientID(sid), cfg.Storage, cfg.Observer, cfg.Log)
			store.Initialize(c.Request().Context())
			c.Set(SessionContextKey, store)

			return next(c)
		}
	}
}

// ClientID derives the storage namespace from a session id, so raw cookie
// values never appear in storage keys or logs.
func ClientID(sid string) string {
	sum := blake2b.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:16])
}

// CurrentSession returns the store put in place by Session, or nil.
func CurrentSession(c echo.Context) *service.SessionStore {
	s, _ := c.Get(SessionContextKey).(*service.SessionStore)
	return s
}
