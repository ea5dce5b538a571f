package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// NewsRepositoryPG implements domain.NewsRepository backed by PostgreSQL.
type NewsRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewNewsRepository creates a new NewsRepositoryPG.
func NewNewsRepository(sql infra.SQLExecutor) *NewsRepositoryPG {
	return &NewsRepositoryPG{sql: sql}
}

// ResolveSlug maps a slug to its news id.
func (r *NewsRepositoryPG) ResolveSlug(ctx context.Context, slug string) (string, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QResolveNewsSlug, slug)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// GetMeta fetches an article's display metadata regardless of status.
func (r *NewsRepositoryPG) GetMeta(ctx context.Context, id string) (*domain.NewsItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectNewsMeta, id)
	return scanNewsItem(row)
}

// ListPublished returns a page of published articles, newest first.
func (r *NewsRepositoryPG) ListPublished(ctx context.Context, page, pageSize int) ([]domain.NewsItem, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	rows, err := r.sql.Query(ctx, sqlinline.QListPublishedNews, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list published news: %w", err)
	}
	return collectNewsItems(rows)
}

// GetPublishedBySlug fetches a published article by slug.
func (r *NewsRepositoryPG) GetPublishedBySlug(ctx context.Context, slug string) (*domain.NewsItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectPublishedNewsBySlug, slug)
	return scanNewsItem(row)
}

// List returns every article for the admin panel, most recently updated first.
func (r *NewsRepositoryPG) List(ctx context.Context) ([]domain.NewsItem, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListNews)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return collectNewsItems(rows)
}

// GetByID fetches any article by id.
func (r *NewsRepositoryPG) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectNewsMeta, id)
	return scanNewsItem(row)
}

// Create inserts a new article.
func (r *NewsRepositoryPG) Create(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertNews,
		item.Slug, item.Title, item.Intro, item.Status, item.PublishedAt)
	return scanNewsItem(row)
}

// Update rewrites an article's editable fields.
func (r *NewsRepositoryPG) Update(ctx context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateNews,
		item.ID, item.Slug, item.Title, item.Intro, item.Status, item.PublishedAt)
	return scanNewsItem(row)
}

// Delete removes an article; its daily metrics cascade away with it.
func (r *NewsRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteNews, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNewsItem(row pgx.Row) (*domain.NewsItem, error) {
	var n domain.NewsItem
	if err := row.Scan(&n.ID, &n.Slug, &n.Title, &n.Intro, &n.Status, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func collectNewsItems(rows pgx.Rows) ([]domain.NewsItem, error) {
	defer rows.Close()
	var items []domain.NewsItem
	for rows.Next() {
		var n domain.NewsItem
		if err := rows.Scan(&n.ID, &n.Slug, &n.Title, &n.Intro, &n.Status, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan news row: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

var _ domain.NewsRepository = (*NewsRepositoryPG)(nil)
