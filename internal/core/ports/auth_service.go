package ports

import (
	"context"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

// LoginInput carries the credentials and tenant for a backend login.
type LoginInput struct {
	Email           string
	Password        string
	TenantSubdomain string
}

// AuthService authenticates against the backend; it never issues tokens.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (token string, user *domain.User, err error)
}
