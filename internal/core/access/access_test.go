package access

import (
	"testing"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

var allRoles = []domain.Role{
	domain.RoleSuperAdmin,
	domain.RoleAdmin,
	domain.RoleRecruiter,
	domain.RoleCandidate,
	domain.RoleEmployee,
}

func contains(roles []domain.Role, r domain.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// expectedAllow is the membership rule written out longhand: exact match,
// or admin/recruiter standing in for each other.
func expectedAllow(role domain.Role, allowed []domain.Role) bool {
	if contains(allowed, role) {
		return true
	}
	switch role {
	case domain.RoleAdmin:
		return contains(allowed, domain.RoleRecruiter)
	case domain.RoleRecruiter:
		return contains(allowed, domain.RoleAdmin)
	}
	return false
}

func TestAuthorize_EveryRoleAgainstEverySingleRoleGuard(t *testing.T) {
	for _, role := range allRoles {
		for _, guarded := range allRoles {
			allowed := []domain.Role{guarded}
			got := Authorize(role, allowed).Allow
			if got != expectedAllow(role, allowed) {
				t.Errorf("Authorize(%s, %v) = %v", role, allowed, got)
			}
		}
	}
}

func TestAuthorize_RecruiterAdminSymmetric(t *testing.T) {
	if !Authorize(domain.RoleRecruiter, []domain.Role{domain.RoleAdmin}).Allow {
		t.Fatalf("recruiter must pass an admin guard")
	}
	if !Authorize(domain.RoleAdmin, []domain.Role{domain.RoleRecruiter}).Allow {
		t.Fatalf("admin must pass a recruiter guard")
	}
}

func TestAuthorize_DeniedRedirectsHome(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleSuperAdmin: "/superadmin",
		domain.RoleAdmin:      "/admin/dashboard",
		domain.RoleRecruiter:  "/admin/dashboard",
		domain.RoleCandidate:  "/candidate/jobs",
		domain.RoleEmployee:   "/employee/jobs",
		domain.Role("guest"):  "/auth/login",
	}
	for role, want := range cases {
		d := Authorize(role, []domain.Role{"nobody"})
		if d.Allow {
			t.Fatalf("%s should be denied", role)
		}
		if d.RedirectTo != want {
			t.Errorf("%s: expected %s, got %s", role, want, d.RedirectTo)
		}
	}
}

func TestAuthorize_EmptyRoleNeverAllowed(t *testing.T) {
	if Authorize("", []domain.Role{""}).Allow {
		t.Fatalf("empty role must not be admitted")
	}
}

func TestGuard_LoadingNeverNavigates(t *testing.T) {
	sessions := []domain.Session{
		{IsLoading: true},
		{IsLoading: true, IsAuthenticated: true, User: &domain.User{Role: domain.RoleCandidate}},
		{IsLoading: true, IsAuthenticated: true, User: &domain.User{Role: domain.RoleAdmin}},
	}
	for _, s := range sessions {
		d := Guard(s, []domain.Role{domain.RoleAdmin}, "")
		if d.Outcome != Pending || d.Target != "" {
			t.Fatalf("loading session produced %v -> %q", d.Outcome, d.Target)
		}
	}
}

func TestGuard_Unauthenticated(t *testing.T) {
	d := Guard(domain.Session{}, []domain.Role{domain.RoleCandidate}, "")
	if d.Outcome != Redirect || d.Target != LoginPath {
		t.Fatalf("expected redirect to login, got %v %q", d.Outcome, d.Target)
	}

	d = Guard(domain.Session{}, []domain.Role{domain.RoleCandidate}, "/careers/login")
	if d.Target != "/careers/login" {
		t.Fatalf("custom redirect ignored: %q", d.Target)
	}
}

func TestGuard_WrongRoleGoesHome(t *testing.T) {
	s := domain.Session{IsAuthenticated: true, User: &domain.User{Role: domain.RoleEmployee}}
	d := Guard(s, []domain.Role{domain.RoleAdmin}, "")
	if d.Outcome != Redirect || d.Target != "/employee/jobs" {
		t.Fatalf("expected employee home, got %v %q", d.Outcome, d.Target)
	}
}

func TestGuard_RendersAndKeepsStoredRole(t *testing.T) {
	user := &domain.User{Role: domain.RoleRecruiter}
	s := domain.Session{IsAuthenticated: true, User: user}
	d := Guard(s, []domain.Role{domain.RoleAdmin}, "")
	if d.Outcome != Render {
		t.Fatalf("expected render, got %v", d.Outcome)
	}
	if user.Role != domain.RoleRecruiter {
		t.Fatalf("stored role was rewritten to %q", user.Role)
	}
}
