package domain

// Session is the client's view of its own authentication state.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"-"`
	IsLoading       bool   `json:"isLoading"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Role returns the stored role of the session user, or "" when logged out.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Storage keys of the persisted client state.
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

// TenantHeader identifies the tenant on every backend call.
const TenantHeader = "x-tenant-subdomain"
