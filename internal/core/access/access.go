// Package access holds the portal's role-based access decisions. Everything
// here is pure: the HTTP middleware and the shell handlers only translate a
// Decision into a response.
package access

import "github.com/talentbridge/portal-gateway/internal/core/domain"

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/auth/login"

// Decision is the result of an authorization check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var homes = map[domain.Role]string{
	domain.RoleSuperAdmin: "/superadmin",
	domain.RoleAdmin:      "/admin/dashboard",
	domain.RoleCandidate:  "/candidate/jobs",
	domain.RoleEmployee:   "/employee/jobs",
}

// HomeFor returns the default landing page for role.
func HomeFor(role domain.Role) string {
	if h, ok := homes[role.AccessRole()]; ok {
		return h
	}
	return LoginPath
}

// Authorize reports whether role may enter a section open to allowed.
// admin and recruiter satisfy each other. A denied role is redirected to
// its own home.
func Authorize(role domain.Role, allowed []domain.Role) Decision {
	want := role.AccessRole()
	for _, a := range allowed {
		if a.AccessRole() == want && want != "" {
			return Decision{Allow: true}
		}
	}
	return Decision{RedirectTo: HomeFor(role)}
}

// Outcome is what a guard does with a request.
type Outcome int

const (
	// Pending: the session is still loading; render a placeholder and do not navigate.
	Pending Outcome = iota
	// Redirect: navigate (replace) to GuardDecision.Target.
	Redirect
	// Render: show the guarded content.
	Render
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	}
	return "unknown"
}

// GuardDecision is the full route guard result.
type GuardDecision struct {
	Outcome Outcome
	Target  string
}

// Guard decides what to do with a client holding sess when it asks for a
// section open to allowed. redirectTo is the unauthenticated target and
// defaults to LoginPath.
func Guard(sess domain.Session, allowed []domain.Role, redirectTo string) GuardDecision {
	if sess.IsLoading {
		return GuardDecision{Outcome: Pending}
	}
	if !sess.IsAuthenticated || sess.User == nil {
		if redirectTo == "" {
			redirectTo = LoginPath
		}
		return GuardDecision{Outcome: Redirect, Target: redirectTo}
	}
	d := Authorize(sess.User.Role, allowed)
	if !d.Allow {
		return GuardDecision{Outcome: Redirect, Target: d.RedirectTo}
	}
	return GuardDecision{Outcome: Render}
}
