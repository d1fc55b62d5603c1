package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/service"
)

// ctxSession returns the session store injected by the Session middleware.
// Its absence is a wiring bug, not a client error.
func ctxSession(c echo.Context) (*service.SessionStore, error) {
	store := middleware.CurrentSession(c)
	if store == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return store, nil
}

// ctxClient performs a fast-fail check before any per-client call: the
// session must be resolved and authenticated.
func ctxClient(c echo.Context) (clientID string, sess domain.Session, err error) {
	store, err := ctxSession(c)
	if err != nil {
		return "", domain.Session{}, err
	}
	sess = store.Snapshot()
	if !sess.IsAuthenticated {
		return "", sess, domain.ErrUnauthenticated
	}
	return store.ClientID(), sess, nil
}
