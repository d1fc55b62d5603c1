package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/metrics"
)

// maxProxyBody caps the request body relayed to the backend. Larger
// bodies are refused with 413, never forwarded cut short.
const maxProxyBody = 1 << 20

// ProxyRoute is one same-origin endpoint forwarded to the backend.
type ProxyRoute struct {
	Name   string
	Method string
	// Path is both the route below /api and the backend path.
	Path string
	// RequireTenant rejects calls without x-tenant-subdomain.
	RequireTenant bool
	// SessionAuth sends the session token when the caller sent no
	// Authorization header.
	SessionAuth bool
}

// ProxyRoutes is the backend surface exposed under /api.
var ProxyRoutes = []ProxyRoute{
	{Name: "candidate_login", Method: http.MethodPost, Path: "/auth/candidate/login"},
	{Name: "jobs", Method: http.MethodGet, Path: "/jobs"},
	{Name: "tenant_public_info", Method: http.MethodGet, Path: "/tenant/public-info", RequireTenant: true},
	{Name: "tenant_users", Method: http.MethodGet, Path: "/tenant/users", RequireTenant: true, SessionAuth: true},
}

// ProxyHandler forwards requests to the backend without interpreting them.
// Every failure is answered here with the {success, message} envelope; none
// is handed to the echo error handler.
type ProxyHandler struct {
	backend ports.Backend
	log     zerolog.Logger
}

func NewProxyHandler(backend ports.Backend, log zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{backend: backend, log: log}
}

// Register mounts every proxy route on g.
func (h *ProxyHandler) Register(g *echo.Group) {
	for _, r := range ProxyRoutes {
		g.Add(r.Method, r.Path, h.Handle(r))
	}
}

// Handle returns the handler forwarding route.
//
// @Summary      Backend proxy
// @Description  Forwards to the backend path of the same name. Non-2xx answers keep their status with a {success:false,message} body; transport failures become 500.
// @Tags         proxy
// @Produce      json
// @Param        x-tenant-subdomain  header  string  false  "Tenant subdomain (required for /tenant/*)"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/jobs [get]
// @Router       /api/auth/candidate/login [post]
// @Router       /api/tenant/public-info [get]
// @Router       /api/tenant/users [get]
func (h *ProxyHandler) Handle(route ProxyRoute) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		req := c.Request()

		tenant := strings.TrimSpace(req.Header.Get(domain.TenantHeader))
		if route.RequireTenant && tenant == "" {
			return h.fail(c, route, http.StatusBadRequest, domain.ErrTenantRequired.Error())
		}

		var body []byte
		if req.Body != nil && req.Method != http.MethodGet && req.Method != http.MethodHead {
			b, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, maxProxyBody))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return h.fail(c, route, http.StatusRequestEntityTooLarge, "request body too large")
			}
			if err != nil {
				return h.fail(c, route, http.StatusBadRequest, "could not read request body")
			}
			body = b
		}

		header := http.Header{}
		for _, k := range []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept, "Accept-Language"} {
			if v := req.Header.Get(k); v != "" {
				header.Set(k, v)
			}
		}
		header.Set(domain.TenantHeader, tenant)
		if route.SessionAuth && header.Get(echo.HeaderAuthorization) == "" {
			if store := middleware.CurrentSession(c); store != nil {
				if token := store.Snapshot().Token; token != "" {
					header.Set(echo.HeaderAuthorization, "Bearer "+token)
				}
			}
		}

		start := time.Now()
		resp, err := h.backend.Forward(req.Context(), ports.ForwardRequest{
			Method:   route.Method,
			Path:     route.Path,
			RawQuery: req.URL.RawQuery,
			Header:   header,
			Body:     body,
		})
		metrics.ProxyRequestDuration.WithLabelValues(route.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			h.log.Error().Err(err).Str("route", route.Name).Msg("backend request failed")
			metrics.ProxyRequestsTotal.WithLabelValues(route.Name, "transport_error").Inc()
			return c.JSON(http.StatusInternalServerError, failure(err.Error()))
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return h.fail(c, route, resp.StatusCode, domain.UpstreamMessage(resp.StatusCode, resp.Body))
		}

		metrics.ProxyRequestsTotal.WithLabelValues(route.Name, strconv.Itoa(resp.StatusCode)).Inc()
		contentType := resp.ContentType
		if contentType == "" {
			contentType = echo.MIMEApplicationJSON
		}
		return c.Blob(resp.StatusCode, contentType, resp.Body)
	}
}

func (h *ProxyHandler) fail(c echo.Context, route ProxyRoute, status int, msg string) error {
	metrics.ProxyRequestsTotal.WithLabelValues(route.Name, strconv.Itoa(status)).Inc()
	return c.JSON(status, failure(msg))
}
