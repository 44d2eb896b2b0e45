package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/siege-works/garrison/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo        Repository
	sessions    *shared.SessionManager
	tokenSecret []byte
	tokenTTL    time.Duration
}

// NewService constructs a new Service.
func NewService(repo Repository, sessions *shared.SessionManager, tokenSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:        repo,
		sessions:    sessions,
		tokenSecret: []byte(tokenSecret),
		tokenTTL:    tokenTTL,
	}
}

// LoginResult carries both artifacts of one logical sign-in: a durable
// server-side session and a stateless bearer token covering the same window.
type LoginResult struct {
	User      *User
	SessionID string
	Token     string
}

// Authenticate validates username/password credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues session and token together. The session is
// persisted before Login returns; if the token cannot be signed the session
// is torn down again so callers never observe a partial sign-in.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := IssueToken(user.ID, s.tokenSecret, s.tokenTTL)
	if err != nil {
		_ = s.sessions.Destroy(ctx, sessionID)
		return nil, err
	}
	return &LoginResult{User: user, SessionID: sessionID, Token: token}, nil
}

// Logout destroys the session record. The bearer token stays valid until it
// expires; the handler instructs the client to discard it.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// TokenSecret exposes the signing secret for the gateway.
func (s *Service) TokenSecret() []byte {
	return s.tokenSecret
}
