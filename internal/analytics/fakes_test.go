package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"server/internal/domain"
)

// fakeMetricsRepo is an in-memory counter store with the same aggregation
// semantics as the Postgres queries: per-day rows, window filters by
// day >= since, rankings ordered by total desc then key asc.
type fakeMetricsRepo struct {
	mu       sync.Mutex
	newsRows map[string]map[string]*domain.DailyNewsMetric // day -> newsID
	tagRows  map[string]map[string]int64                   // day -> tag -> clicks
	failWith error
}

func newFakeMetricsRepo() *fakeMetricsRepo {
	return &fakeMetricsRepo{
		newsRows: make(map[string]map[string]*domain.DailyNewsMetric),
		tagRows:  make(map[string]map[string]int64),
	}
}

func (f *fakeMetricsRepo) IncrementNewsMetric(_ context.Context, day, newsID string, views, shares int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.newsRows[day] == nil {
		f.newsRows[day] = make(map[string]*domain.DailyNewsMetric)
	}
	row := f.newsRows[day][newsID]
	if row == nil {
		row = &domain.DailyNewsMetric{Day: day, NewsID: newsID}
		f.newsRows[day][newsID] = row
	}
	row.Views += views
	row.Shares += shares
	return nil
}

func (f *fakeMetricsRepo) IncrementTagMetric(_ context.Context, day, tag string, clicks int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tagRows[day] == nil {
		f.tagRows[day] = make(map[string]int64)
	}
	f.tagRows[day][tag] += int64(clicks)
	return nil
}

func (f *fakeMetricsRepo) Overview(_ context.Context, since string) (*domain.OverviewTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var totals domain.OverviewTotals
	for day, rows := range f.newsRows {
		if day < since {
			continue
		}
		for _, row := range rows {
			totals.Views += int64(row.Views)
			totals.Shares += int64(row.Shares)
		}
	}
	for day, tags := range f.tagRows {
		if day < since {
			continue
		}
		for _, clicks := range tags {
			totals.Clicks += clicks
		}
	}
	return &totals, nil
}

func (f *fakeMetricsRepo) NewsTimeseries(_ context.Context, since, metric string) ([]domain.TimeseriesPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDay := make(map[string]int64)
	for day, rows := range f.newsRows {
		if day < since {
			continue
		}
		for _, row := range rows {
			if metric == "shares" {
				byDay[day] += int64(row.Shares)
			} else {
				byDay[day] += int64(row.Views)
			}
		}
	}
	return sortedPoints(byDay), nil
}

func (f *fakeMetricsRepo) TagTimeseries(_ context.Context, since string) ([]domain.TimeseriesPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDay := make(map[string]int64)
	for day, tags := range f.tagRows {
		if day < since {
			continue
		}
		for _, clicks := range tags {
			byDay[day] += clicks
		}
	}
	return sortedPoints(byDay), nil
}

func (f *fakeMetricsRepo) NewsRanking(_ context.Context, since, metric string, limit int) ([]domain.RankingRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[string]int64)
	for day, rows := range f.newsRows {
		if day < since {
			continue
		}
		for id, row := range rows {
			if metric == "shares" {
				totals[id] += int64(row.Shares)
			} else {
				totals[id] += int64(row.Views)
			}
		}
	}
	return rankRows(totals, limit, func(key string, total int64) domain.RankingRow {
		return domain.RankingRow{NewsID: key, Total: total}
	}), nil
}

func (f *fakeMetricsRepo) TagRanking(_ context.Context, since string, limit int) ([]domain.RankingRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[string]int64)
	for day, tags := range f.tagRows {
		if day < since {
			continue
		}
		for tag, clicks := range tags {
			totals[tag] += clicks
		}
	}
	return rankRows(totals, limit, func(key string, total int64) domain.RankingRow {
		return domain.RankingRow{Tag: key, Total: total}
	}), nil
}

func sortedPoints(byDay map[string]int64) []domain.TimeseriesPoint {
	var points []domain.TimeseriesPoint
	for day, value := range byDay {
		points = append(points, domain.TimeseriesPoint{Date: day, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func rankRows(totals map[string]int64, limit int, build func(string, int64) domain.RankingRow) []domain.RankingRow {
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if totals[keys[i]] != totals[keys[j]] {
			return totals[keys[i]] > totals[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	rows := make([]domain.RankingRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, build(key, totals[key]))
	}
	return rows
}

// fakeNewsRepo resolves slugs and serves metadata from a fixed map.
type fakeNewsRepo struct {
	bySlug map[string]string
	byID   map[string]*domain.NewsItem
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{
		bySlug: make(map[string]string),
		byID:   make(map[string]*domain.NewsItem),
	}
}

func (f *fakeNewsRepo) add(id, slug, title string, publishedAt *time.Time) {
	f.bySlug[slug] = id
	f.byID[id] = &domain.NewsItem{ID: id, Slug: slug, Title: title, Status: domain.NewsPublished, PublishedAt: publishedAt}
}

func (f *fakeNewsRepo) ResolveSlug(_ context.Context, slug string) (string, error) {
	if id, ok := f.bySlug[slug]; ok {
		return id, nil
	}
	return "", domain.ErrNotFound
}

func (f *fakeNewsRepo) GetMeta(_ context.Context, id string) (*domain.NewsItem, error) {
	if item, ok := f.byID[id]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNewsRepo) ListPublished(context.Context, int, int) ([]domain.NewsItem, error) {
	return nil, nil
}

func (f *fakeNewsRepo) GetPublishedBySlug(_ context.Context, slug string) (*domain.NewsItem, error) {
	if id, ok := f.bySlug[slug]; ok {
		return f.byID[id], nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNewsRepo) List(context.Context) ([]domain.NewsItem, error) { return nil, nil }

func (f *fakeNewsRepo) GetByID(_ context.Context, id string) (*domain.NewsItem, error) {
	return f.GetMeta(nil, id)
}

func (f *fakeNewsRepo) Create(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	return item, nil
}

func (f *fakeNewsRepo) Update(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	return item, nil
}

func (f *fakeNewsRepo) Delete(context.Context, string) error { return nil }

func fixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}
