package domain

import "time"

// Session is a server-side admin session. Only the SHA-256 digest of the
// opaque token is persisted; the raw token lives in the caller's cookie.
type Session struct {
	ID          string
	AdminUserID string
	TokenHash   string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RevokedAt   *time.Time
}

// Live reports whether the session is still usable at the given instant.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
