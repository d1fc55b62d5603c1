package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/portal-gateway/internal/core/access"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/metrics"
)

type pendingResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// RouteGuard gates a section to the allowed roles. It must run after
// Session. An unresolved session gets a 202 placeholder and is never
// redirected; anyone else who may not enter is sent elsewhere with a 302.
func RouteGuard(section string, allowed []domain.Role, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := domain.Session{}
			if store := CurrentSession(c); store != nil {
				sess = store.Snapshot()
			}

			d := access.Guard(sess, allowed, redirectTo)
			metrics.GuardDecisionsTotal.WithLabelValues(section, d.Outcome.String()).Inc()

			switch d.Outcome {
			case access.Pending:
				return c.JSON(http.StatusAccepted, pendingResponse{Success: true, Status: "loading"})
			case access.Redirect:
				return c.Redirect(http.StatusFound, d.Target)
			}
			return next(c)
		}
	}
}

// RequireSession rejects clients that are not logged in.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := CurrentSession(c)
			if store == nil || !store.Snapshot().IsAuthenticated {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
