package domain

import (
	"context"
	"time"
)

// MetricsRepository is the counter store. Increments must be atomic upserts;
// reads never mutate.
type MetricsRepository interface {
	IncrementNewsMetric(ctx context.Context, day, newsID string, views, shares int) error
	IncrementTagMetric(ctx context.Context, day, tag string, clicks int) error
	Overview(ctx context.Context, since string) (*OverviewTotals, error)
	NewsTimeseries(ctx context.Context, since, metric string) ([]TimeseriesPoint, error)
	TagTimeseries(ctx context.Context, since string) ([]TimeseriesPoint, error)
	NewsRanking(ctx context.Context, since, metric string, limit int) ([]RankingRow, error)
	TagRanking(ctx context.Context, since string, limit int) ([]RankingRow, error)
}

// SessionRepository persists admin sessions keyed by token hash.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindLive(ctx context.Context, tokenHash string, now time.Time) (*Session, error)
	Revoke(ctx context.Context, tokenHash string, at time.Time) error
	DeleteDeadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AdminUserRepository reads admin accounts; creation only happens through the
// provisioning CLI.
type AdminUserRepository interface {
	Create(ctx context.Context, user *AdminUser) (*AdminUser, error)
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// NewsRepository is the article store as this service consumes it: slug
// resolution and metadata for analytics, plus the thin CRUD the admin panel
// needs.
type NewsRepository interface {
	ResolveSlug(ctx context.Context, slug string) (string, error)
	GetMeta(ctx context.Context, id string) (*NewsItem, error)
	ListPublished(ctx context.Context, page, pageSize int) ([]NewsItem, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*NewsItem, error)
	List(ctx context.Context) ([]NewsItem, error)
	GetByID(ctx context.Context, id string) (*NewsItem, error)
	Create(ctx context.Context, item *NewsItem) (*NewsItem, error)
	Update(ctx context.Context, item *NewsItem) (*NewsItem, error)
	Delete(ctx context.Context, id string) error
}
