package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// AdminUserRepositoryPG implements domain.AdminUserRepository backed by PostgreSQL.
type AdminUserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAdminUserRepository creates a new AdminUserRepositoryPG.
func NewAdminUserRepository(sql infra.SQLExecutor) *AdminUserRepositoryPG {
	return &AdminUserRepositoryPG{sql: sql}
}

// Create inserts a new admin account. Used only by the provisioning CLI.
func (r *AdminUserRepositoryPG) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertAdminUser, id, user.Email, user.PasswordHash, user.Role)
	return scanAdminUser(row)
}

// GetByID fetches an admin account by UUID.
func (r *AdminUserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAdminUserByID, id)
	return scanAdminUser(row)
}

// GetByEmail fetches an admin account by unique email.
func (r *AdminUserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAdminUserByEmail, email)
	return scanAdminUser(row)
}

// TouchLastLogin records a successful login time.
func (r *AdminUserRepositoryPG) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.sql.Exec(ctx, sqlinline.QTouchAdminLastLogin, id, at)
	return err
}

func scanAdminUser(row pgx.Row) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.LastLoginAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.AdminUserRepository = (*AdminUserRepositoryPG)(nil)
