package repo

import (
	"context"
	"fmt"
	"time"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// MetricsRepositoryPG implements domain.MetricsRepository using PostgreSQL.
// All increments are single upsert statements; there is no read-modify-write
// path, so concurrent callers on the same (day, key) never lose updates.
type MetricsRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewMetricsRepository constructs the repository.
func NewMetricsRepository(sql infra.SQLExecutor) *MetricsRepositoryPG {
	return &MetricsRepositoryPG{sql: sql}
}

// IncrementNewsMetric adds view/share deltas to the (day, newsID) row,
// creating it when absent.
func (r *MetricsRepositoryPG) IncrementNewsMetric(ctx context.Context, day, newsID string, views, shares int) error {
	_, err := r.sql.Exec(ctx, sqlinline.QIncrementNewsMetric, day, newsID, views, shares)
	return err
}

// IncrementTagMetric adds a click delta to the (day, tag) row, creating it
// when absent.
func (r *MetricsRepositoryPG) IncrementTagMetric(ctx context.Context, day, tag string, clicks int) error {
	_, err := r.sql.Exec(ctx, sqlinline.QIncrementTagMetric, day, tag, clicks)
	return err
}

// Overview sums all counters from the given day onward. Empty windows yield
// zero totals, never nulls.
func (r *MetricsRepositoryPG) Overview(ctx context.Context, since string) (*domain.OverviewTotals, error) {
	var totals domain.OverviewTotals

	row := r.sql.QueryRow(ctx, sqlinline.QOverviewNewsTotals, since)
	if err := row.Scan(&totals.Views, &totals.Shares); err != nil {
		return nil, fmt.Errorf("overview news totals: %w", err)
	}

	row = r.sql.QueryRow(ctx, sqlinline.QOverviewTagTotals, since)
	if err := row.Scan(&totals.Clicks); err != nil {
		return nil, fmt.Errorf("overview tag totals: %w", err)
	}

	return &totals, nil
}

// NewsTimeseries returns per-day sums of the given news metric, ascending by
// day. Days with no rows are absent from the result.
func (r *MetricsRepositoryPG) NewsTimeseries(ctx context.Context, since, metric string) ([]domain.TimeseriesPoint, error) {
	query := sqlinline.QTimeseriesViews
	if metric == "shares" {
		query = sqlinline.QTimeseriesShares
	}
	return r.timeseries(ctx, query, since)
}

// TagTimeseries returns per-day click sums across all tags, ascending by day.
func (r *MetricsRepositoryPG) TagTimeseries(ctx context.Context, since string) ([]domain.TimeseriesPoint, error) {
	return r.timeseries(ctx, sqlinline.QTimeseriesClicks, since)
}

func (r *MetricsRepositoryPG) timeseries(ctx context.Context, query, since string) ([]domain.TimeseriesPoint, error) {
	rows, err := r.sql.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("timeseries query: %w", err)
	}
	defer rows.Close()

	var points []domain.TimeseriesPoint
	for rows.Next() {
		var p domain.TimeseriesPoint
		var day time.Time
		if err := rows.Scan(&day, &p.Value); err != nil {
			return nil, fmt.Errorf("timeseries scan: %w", err)
		}
		p.Date = day.Format(domain.DayFormat)
		points = append(points, p)
	}
	return points, rows.Err()
}

// NewsRanking returns the top entities by metric sum, descending with news id
// as the tie-break.
func (r *MetricsRepositoryPG) NewsRanking(ctx context.Context, since, metric string, limit int) ([]domain.RankingRow, error) {
	query := sqlinline.QRankingViews
	if metric == "shares" {
		query = sqlinline.QRankingShares
	}

	rows, err := r.sql.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("news ranking query: %w", err)
	}
	defer rows.Close()

	var out []domain.RankingRow
	for rows.Next() {
		var row domain.RankingRow
		if err := rows.Scan(&row.NewsID, &row.Total); err != nil {
			return nil, fmt.Errorf("news ranking scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TagRanking returns the top tags by click sum, descending with tag name as
// the tie-break.
func (r *MetricsRepositoryPG) TagRanking(ctx context.Context, since string, limit int) ([]domain.RankingRow, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QRankingClicks, since, limit)
	if err != nil {
		return nil, fmt.Errorf("tag ranking query: %w", err)
	}
	defer rows.Close()

	var out []domain.RankingRow
	for rows.Next() {
		var row domain.RankingRow
		if err := rows.Scan(&row.Tag, &row.Total); err != nil {
			return nil, fmt.Errorf("tag ranking scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ domain.MetricsRepository = (*MetricsRepositoryPG)(nil)
