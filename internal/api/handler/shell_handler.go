package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/portal-gateway/internal/core/access"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

// Section is a role-gated area of the portal with its own layout.
type Section struct {
	Name    string
	Title   string
	Allowed []domain.Role
	Nav     []navItem
}

// Sections lists every role-gated area and who may enter it.
var Sections = []Section{
	{
		Name:    "superadmin",
		Title:   "Platform Administration",
		Allowed: []domain.Role{domain.RoleSuperAdmin},
		Nav: []navItem{
			{Label: "Overview", Href: "/superadmin", Icon: "layout-dashboard"},
			{Label: "Tenants", Href: "/superadmin/tenants", Icon: "building"},
			{Label: "Users", Href: "/superadmin/users", Icon: "users"},
		},
	},
	{
		Name:    "admin",
		Title:   "Recruitment",
		Allowed: []domain.Role{domain.RoleAdmin, domain.RoleRecruiter},
		Nav: []navItem{
			{Label: "Dashboard", Href: "/admin/dashboard", Icon: "layout-dashboard"},
			{Label: "Jobs", Href: "/admin/jobs", Icon: "briefcase"},
			{Label: "Candidates", Href: "/admin/candidates", Icon: "user-search"},
			{Label: "Team", Href: "/admin/users", Icon: "users"},
		},
	},
	{
		Name:    "candidate",
		Title:   "Careers",
		Allowed: []domain.Role{domain.RoleCandidate},
		Nav: []navItem{
			{Label: "Jobs", Href: "/candidate/jobs", Icon: "briefcase"},
			{Label: "My applications", Href: "/candidate/applications", Icon: "file-text"},
			{Label: "Profile", Href: "/candidate/profile", Icon: "user"},
		},
	},
	{
		Name:    "employee",
		Title:   "Internal Mobility",
		Allowed: []domain.Role{domain.RoleEmployee},
		Nav: []navItem{
			{Label: "Open positions", Href: "/employee/jobs", Icon: "briefcase"},
			{Label: "Referrals", Href: "/employee/referrals", Icon: "share"},
			{Label: "Profile", Href: "/employee/profile", Icon: "user"},
		},
	},
}

const footerText = "TalentBridge"

// ShellHandler renders the layout shell of a section: header, sidebar and
// footer. The RouteGuard in front of it has already let the client in.
type ShellHandler struct {
	notifications NotificationStore
}

func NewShellHandler(notifications NotificationStore) *ShellHandler {
	return &ShellHandler{notifications: notifications}
}

// Render returns the handler for section.
//
// @Summary      Layout shell
// @Tags         shell
// @Produce      json
// @Success      200  {object}  shellResponse
// @Success      202  {object}  map[string]any
// @Success      302
// @Router       /superadmin [get]
// @Router       /admin [get]
// @Router       /candidate [get]
// @Router       /employee [get]
func (h *ShellHandler) Render(section Section) echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID, sess, err := ctxClient(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, shellResponse{
			Success: true,
			Section: section.Name,
			Home:    access.HomeFor(sess.Role()),
			Header: shellHeader{
				Title:       section.Title,
				DisplayName: sess.User.DisplayName(),
				Role:        string(sess.Role()),
				UnreadCount: h.notifications.UnreadCount(clientID),
			},
			Sidebar: section.Nav,
			Footer:  shellFooter{Text: footerText},
		})
	}
}
