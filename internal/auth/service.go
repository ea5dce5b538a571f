// Package auth implements the admin session lifecycle: credential
// verification, opaque token minting, validation and revocation.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
)

// Service drives login, session validation and logout against the session
// and admin account stores.
type Service struct {
	sessions domain.SessionRepository
	users    domain.AdminUserRepository
	clock    domain.Clock
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewService constructs the auth service. A nil clock defaults to UTC wall
// time; a non-positive ttl defaults to 24 hours.
func NewService(sessions domain.SessionRepository, users domain.AdminUserRepository, clock domain.Clock, ttl time.Duration, logger zerolog.Logger) *Service {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{sessions: sessions, users: users, clock: clock, ttl: ttl, logger: logger}
}

// Login verifies credentials and mints a session. The returned token is the
// client-side credential; it is never stored. Unknown accounts and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// burn comparable time so unknown emails aren't distinguishable
			// from wrong passwords
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := MintToken()
	if err != nil {
		return "", nil, err
	}

	now := s.clock().UTC()
	session := &domain.Session{
		AdminUserID: user.ID,
		TokenHash:   HashToken(token),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error().Err(err).Str("admin_id", user.ID).Msg("touch last login failed")
	}

	return token, user, nil
}

// Validate resolves a presented token to its owning admin. Missing, revoked
// and expired sessions all come back ErrUnauthorized.
func (s *Service) Validate(ctx context.Context, token string) (*domain.AdminUser, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.FindLive(ctx, HashToken(token), s.clock().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, session.AdminUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session behind the token. Unknown and already revoked
// tokens succeed silently.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, HashToken(token), s.clock().UTC())
}

// TTL reports the configured session lifetime, used for the cookie expiry.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
