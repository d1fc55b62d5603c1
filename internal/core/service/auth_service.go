package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

const candidateLoginPath = "/auth/candidate/login"

// AuthService logs clients in through the backend. Token issuance and
// credential checks stay with the backend.
type AuthService struct {
	backend ports.Backend
}

func NewAuthService(backend ports.Backend) *AuthService {
	return &AuthService{backend: backend}
}

// loginEnvelope accepts both a flat body and one nested under "data".
type loginEnvelope struct {
	Success *bool        `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Data    *struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	} `json:"data"`
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	body, err := json.Marshal(map[string]string{"email": in.Email, "password": in.Password})
	if err != nil {
		return "", nil, fmt.Errorf("login: encode body: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set(domain.TenantHeader, in.TenantSubdomain)

	resp, err := s.backend.Forward(ctx, ports.ForwardRequest{
		Method: http.MethodPost,
		Path:   candidateLoginPath,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return "", nil, fmt.Errorf("login: %w: %v", domain.ErrBackendUnavailable, err)
	}

	var env loginEnvelope
	decodeErr := json.Unmarshal(resp.Body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Message: domain.UpstreamMessage(resp.StatusCode, resp.Body)}
	}
	if decodeErr != nil {
		return "", nil, fmt.Errorf("login: decode response: %w", decodeErr)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = domain.ErrInvalidCredentials.Error()
		}
		return "", nil, &domain.UpstreamError{StatusCode: http.StatusUnauthorized, Message: msg}
	}

	token, user := env.Token, env.User
	if env.Data != nil {
		if token == "" {
			token = env.Data.Token
		}
		if user == nil {
			user = env.Data.User
		}
	}
	if token == "" || user == nil {
		return "", nil, fmt.Errorf("login: backend response missing token or user")
	}
	return token, user, nil
}
