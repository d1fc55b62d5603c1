package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/access"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

// SessionHandler exposes the client's session: who is logged in, login
// through the backend and logout.
type SessionHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewSessionHandler(authService ports.AuthService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, log: log}
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}
	sess := store.Snapshot()

	resp := sessionResponse{
		Success:         true,
		User:            sess.User,
		IsAuthenticated: sess.IsAuthenticated,
		IsLoading:       sess.IsLoading,
	}
	if sess.IsAuthenticated {
		resp.Home = access.HomeFor(sess.Role())
	}
	return c.JSON(http.StatusOK, resp)
}

// Login authenticates against the backend and starts the client's session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        x-tenant-subdomain  header    string        false  "Tenant subdomain"
// @Param        body                body      loginRequest  true   "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, user, err := h.authService.Login(ctx, ports.LoginInput{
		Email:           req.Email,
		Password:        req.Password,
		TenantSubdomain: c.Request().Header.Get(domain.TenantHeader),
	})
	if err != nil {
		h.log.Info().Err(err).Str("client", store.ClientID()).Msg("login rejected")
		return err
	}
	if err := store.Login(ctx, user, token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Success: true, User: user, Home: access.HomeFor(user.Role)})
}

// Logout ends the client's session and closes its live connection.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      503  {object}  errorResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := store.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Message: "logged out"})
}
