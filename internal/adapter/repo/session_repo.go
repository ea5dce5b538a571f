package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// SessionRepositoryPG implements domain.SessionRepository backed by PostgreSQL.
type SessionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewSessionRepository creates a new SessionRepositoryPG.
func NewSessionRepository(sql infra.SQLExecutor) *SessionRepositoryPG {
	return &SessionRepositoryPG{sql: sql}
}

// Create stores a new session row and fills in its generated id.
func (r *SessionRepositoryPG) Create(ctx context.Context, session *domain.Session) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertSession,
		session.AdminUserID,
		session.TokenHash,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return row.Scan(&session.ID)
}

// FindLive returns the session for the given token hash when it is neither
// revoked nor expired at the provided instant.
func (r *SessionRepositoryPG) FindLive(ctx context.Context, tokenHash string, now time.Time) (*domain.Session, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLiveSession, tokenHash, now)

	var s domain.Session
	if err := row.Scan(&s.ID, &s.AdminUserID, &s.TokenHash, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Revoke marks the matching session revoked. Unknown or already revoked
// tokens are a silent no-op.
func (r *SessionRepositoryPG) Revoke(ctx context.Context, tokenHash string, at time.Time) error {
	_, err := r.sql.Exec(ctx, sqlinline.QRevokeSession, tokenHash, at)
	return err
}

// DeleteDeadBefore removes sessions expired or revoked before the cutoff and
// reports how many rows went away.
func (r *SessionRepositoryPG) DeleteDeadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDeadSessions, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ domain.SessionRepository = (*SessionRepositoryPG)(nil)
