package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

// errorResponse is the body of every failed request: {"success":false,"message":...}.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// knownErrors maps domain sentinels to their status. The sentinel's own text
// is sent, never the wrapping context.
var knownErrors = []struct {
	err    error
	status int
}{
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrTenantRequired, http.StatusBadRequest},
	{domain.ErrNotificationNotFound, http.StatusNotFound},
	{domain.ErrSessionStorage, http.StatusServiceUnavailable},
}

// NewHTTPErrorHandler renders every error returned by a handler or
// middleware as the JSON failure envelope. Backend answers keep their status;
// anything unrecognised is logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Int("status", status).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Success: false, Message: message})
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode, upstream.Message
	}

	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.status, k.err.Error()
		}
	}

	// Backend outages carry the address that failed, which helps operators.
	if errors.Is(err, domain.ErrBackendUnavailable) {
		return http.StatusBadGateway, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
