package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/gradebook/internal/domain/auth"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/ports"
)

// ErrNoSession means the caller has no current identity. It is not a failure: the HTTP
// layer answers it with a sign-in redirect.
var ErrNoSession = errors.New("no current session")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
}

// AuthService orchestrates authentication flows by coordinating provider, role mapping, and session persistence.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		now:      time.Now,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin exchanges the code for an identity, maps its groups to a role and
// persists a new session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      s.roles.Map(identity.Groups),
		ExpiresAt: identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session}, nil
}

// CurrentSession resolves the identity behind sessionID with a single store lookup.
//
// It returns ErrNoSession when the id is empty, unknown or expired. Expired sessions are
// removed. Any other store error is returned as an upstream failure and must not be
// mistaken for a signed-out caller.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, apperrors.Upstream("session provider unavailable", fmt.Errorf("get session: %w", err))
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrNoSession, fmt.Errorf("delete expired session: %w", deleteErr))
		}
		return nil, ErrNoSession
	}

	return &session, nil
}

// SignOut ends sessions for the holder of sessionID and returns how many were removed.
// SignOutGlobal ends every session of that user; SignOutLocal only the presented one.
// An empty or unknown session id is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string, scope domainauth.SignOutScope) (int, error) {
	if sessionID == "" {
		return 0, nil
	}

	if scope != domainauth.SignOutGlobal {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return 0, apperrors.Upstream("sign-out failed", fmt.Errorf("delete session: %w", err))
		}
		return 1, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Upstream("sign-out failed", fmt.Errorf("get session: %w", err))
	}

	removed, err := s.RevokeUserSessions(ctx, session.UserID)
	if err != nil {
		return 0, err
	}
	// Sessions written before the user index existed are not listed in it.
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return removed, apperrors.Upstream("sign-out failed", fmt.Errorf("delete session: %w", err))
	}
	if removed == 0 {
		removed = 1
	}
	return removed, nil
}

// RevokeUserSessions ends every session belonging to userID.
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, apperrors.Validation("user id is required")
	}
	n, err := s.sessions.DeleteUserSessions(ctx, userID)
	if err != nil {
		return 0, apperrors.Upstream("sign-out failed", fmt.Errorf("delete user sessions: %w", err))
	}
	return n, nil
}
