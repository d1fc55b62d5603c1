package domain

import (
	"encoding/json"
	"strings"
)

// Role is the sole authorization dimension of the portal.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleRecruiter  Role = "recruiter"
	RoleCandidate  Role = "candidate"
	RoleEmployee   Role = "employee"
)

// AccessRole returns the role used for access comparisons. Recruiters are
// admins for every access check; the stored role is left untouched.
func (r Role) AccessRole() Role {
	if r == RoleRecruiter {
		return RoleAdmin
	}
	return r
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleRecruiter, RoleCandidate, RoleEmployee:
		return true
	}
	return false
}

// User mirrors the user document returned by the backend. Unknown profile
// fields are kept in Extra so they survive a round trip through storage.
type User struct {
	ID        string         `json:"_id"`
	Email     string         `json:"email"`
	Role      Role           `json:"role"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	TenantID  string         `json:"tenantId,omitempty"`
	Extra     map[string]any `json:"-"`
}

// DisplayName is what the layout header shows for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Email
}

var knownUserFields = map[string]struct{}{
	"_id": {}, "id": {}, "email": {}, "role": {},
	"firstName": {}, "lastName": {}, "tenantId": {},
}

// UnmarshalJSON accepts both "_id" and "id" and collects the remaining
// profile fields into Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out User
	fields := []struct {
		key string
		dst *string
	}{
		{"_id", &out.ID},
		{"email", &out.Email},
		{"firstName", &out.FirstName},
		{"lastName", &out.LastName},
		{"tenantId", &out.TenantID},
	}
	for _, f := range fields {
		if v, ok := raw[f.key]; ok {
			if err := json.Unmarshal(v, f.dst); err != nil {
				return err
			}
		}
	}
	if out.ID == "" {
		if v, ok := raw["id"]; ok {
			_ = json.Unmarshal(v, &out.ID)
		}
	}
	if v, ok := raw["role"]; ok {
		var role string
		if err := json.Unmarshal(v, &role); err != nil {
			return err
		}
		out.Role = Role(strings.ToLower(role))
	}

	for k, v := range raw {
		if _, known := knownUserFields[k]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[k] = val
	}

	*u = out
	return nil
}

// MarshalJSON writes the known fields and merges Extra back in.
func (u User) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(u.Extra)+7)
	for k, v := range u.Extra {
		m[k] = v
	}
	m["_id"] = u.ID
	m["email"] = u.Email
	m["role"] = string(u.Role)
	if u.FirstName != "" {
		m["firstName"] = u.FirstName
	}
	if u.LastName != "" {
		m["lastName"] = u.LastName
	}
	if u.TenantID != "" {
		m["tenantId"] = u.TenantID
	}
	return json.Marshal(m)
}
