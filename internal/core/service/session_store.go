package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
)

// SessionStore is the authentication state of one client. It is the only
// writer of that client's session record; token changes are announced to
// the observer, which owns the client's socket.
//
// A new store starts loading. Initialize resolves it from storage exactly
// once; Login and Logout also count as resolution, so a later Initialize
// cannot resurrect a session that was just cleared.
type SessionStore struct {
	clientID string
	storage  ports.SessionStorage
	observer ports.TokenObserver
	log      zerolog.Logger
	now      func() time.Time

	mu          sync.RWMutex
	state       domain.Session
	initialized bool
}

// NewSessionStore creates the store for clientID. observer may be nil.
func NewSessionStore(clientID string, storage ports.SessionStorage, observer ports.TokenObserver, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		clientID: clientID,
		storage:  storage,
		observer: observer,
		log:      log,
		now:      time.Now,
		state:    domain.Session{IsLoading: true},
	}
}

// ClientID is the opaque id this store was created for.
func (s *SessionStore) ClientID() string { return s.clientID }

// Snapshot returns a copy of the current state.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	return out
}

// Initialize reads the persisted token and user. Both must be present for
// the client to count as authenticated; anything unreadable, malformed or
// expired leaves it logged out. It never fails and always ends loading.
// The resolved token, or "" when logged out, is published to the observer.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true

	token := s.GetToken(ctx)
	user := s.GetUser(ctx)

	if token != "" && TokenExpired(token, s.now()) {
		s.log.Info().Str("client", s.clientID).Msg("persisted token expired, clearing session")
		if err := s.storage.Delete(ctx, s.clientID, domain.SessionKeyToken, domain.SessionKeyUser); err != nil {
			s.log.Warn().Err(err).Str("client", s.clientID).Msg("failed to clear expired session")
		}
		token, user = "", nil
	}

	authenticated := token != "" && user != nil
	s.state = domain.Session{IsLoading: false, IsAuthenticated: authenticated}
	if authenticated {
		s.state.User = user
		s.state.Token = token
	}
	published := s.state.Token
	s.mu.Unlock()

	// Observers also hear about a session that ended without a logout
	// (expired, evicted or malformed) so its socket and state go away.
	s.notify(published)
}

// Login persists user and token and marks the client authenticated.
func (s *SessionStore) Login(ctx context.Context, user *domain.User, token string) error {
	if user == nil || token == "" {
		return domain.ErrInvalidCredentials
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("login: encode user: %w", err)
	}

	s.mu.Lock()
	if err := s.storage.Set(ctx, s.clientID, domain.SessionKeyToken, token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("login: %w: %v", domain.ErrSessionStorage, err)
	}
	if err := s.storage.Set(ctx, s.clientID, domain.SessionKeyUser, string(raw)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("login: %w: %v", domain.ErrSessionStorage, err)
	}
	u := *user
	s.state = domain.Session{User: &u, Token: token, IsAuthenticated: true}
	s.initialized = true
	s.mu.Unlock()

	s.log.Info().Str("client", s.clientID).Str("role", string(user.Role)).Msg("session started")
	s.notify(token)
	return nil
}

// Logout clears the persisted and in-memory session and closes the
// client's socket. The in-memory state is cleared even when storage fails;
// the storage error is still returned.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	err := s.storage.Delete(ctx, s.clientID, domain.SessionKeyToken, domain.SessionKeyUser)
	s.state = domain.Session{}
	s.initialized = true
	s.mu.Unlock()

	s.notify("")
	s.log.Info().Str("client", s.clientID).Msg("session ended")

	if err != nil {
		return fmt.Errorf("logout: %w: %v", domain.ErrSessionStorage, err)
	}
	return nil
}

// GetToken returns the persisted token, or "" when absent or unreadable.
func (s *SessionStore) GetToken(ctx context.Context) string {
	token, ok, err := s.storage.Get(ctx, s.clientID, domain.SessionKeyToken)
	if err != nil {
		s.log.Warn().Err(err).Str("client", s.clientID).Msg("failed to read persisted token")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// GetUser returns the persisted user, or nil when absent, unreadable or
// not valid JSON.
func (s *SessionStore) GetUser(ctx context.Context) *domain.User {
	raw, ok, err := s.storage.Get(ctx, s.clientID, domain.SessionKeyUser)
	if err != nil {
		s.log.Warn().Err(err).Str("client", s.clientID).Msg("failed to read persisted user")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn().Err(err).Str("client", s.clientID).Msg("persisted user is malformed")
		return nil
	}
	return &u
}

func (s *SessionStore) notify(token string) {
	if s.observer != nil {
		s.observer.TokenChanged(s.clientID, token)
	}
}

// TokenObservers fans a token change out to several observers in order.
type TokenObservers []ports.TokenObserver

func (o TokenObservers) TokenChanged(clientID, token string) {
	for _, obs := range o {
		obs.TokenChanged(clientID, token)
	}
}
