package analytics

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// Reporting period lookbacks in days.
const (
	Period7d  = 7
	Period30d = 30
	Period1y  = 365
)

// Metric names accepted by the reporting endpoints.
const (
	MetricViews  = "views"
	MetricShares = "shares"
	MetricClicks = "clicks"
)

const (
	defaultRankingLimit = 10
	maxRankingLimit     = 50
)

func defaultClock() time.Time { return time.Now().UTC() }

// PeriodDays maps a period query value to its lookback window length.
// Unknown values fall back to 30 days.
func PeriodDays(period string) int {
	switch period {
	case "7d":
		return Period7d
	case "1y":
		return Period1y
	default:
		return Period30d
	}
}

// NormalizeMetric coerces unknown metric names to views.
func NormalizeMetric(metric string) string {
	switch metric {
	case MetricViews, MetricShares, MetricClicks:
		return metric
	default:
		return MetricViews
	}
}

// OverviewReport is the dashboard headline block.
type OverviewReport struct {
	Totals     domain.OverviewTotals
	PeriodDays int
}

// TimeseriesReport is one metric bucketed per day plus the first-vs-last
// trend. Trend is nil when the series is empty.
type TimeseriesReport struct {
	Points []domain.TimeseriesPoint
	Trend  *float64
}

// RankingEntry is one ranked row, enriched with article metadata when the
// article still exists. Click rankings carry the tag as the title.
type RankingEntry struct {
	NewsID      string
	Slug        string
	Title       string
	PublishedAt *time.Time
	Total       int64
}

// RankingReport is a top-N aggregation over a window.
type RankingReport struct {
	Entries    []RankingEntry
	Metric     string
	PeriodDays int
}

// Reporting answers read-only dashboard queries over the counter store. It
// never writes.
type Reporting struct {
	metrics domain.MetricsRepository
	news    domain.NewsRepository
	clock   domain.Clock
	logger  zerolog.Logger
}

// NewReporting constructs the reporting engine. A nil clock defaults to UTC
// wall time.
func NewReporting(metrics domain.MetricsRepository, news domain.NewsRepository, clock domain.Clock, logger zerolog.Logger) *Reporting {
	if clock == nil {
		clock = defaultClock
	}
	return &Reporting{metrics: metrics, news: news, clock: clock, logger: logger}
}

func (s *Reporting) since(days int) string {
	return s.clock().UTC().AddDate(0, 0, -days).Format(domain.DayFormat)
}

// Overview sums every counter over the period window.
func (s *Reporting) Overview(ctx context.Context, period string) (*OverviewReport, error) {
	days := PeriodDays(period)
	totals, err := s.metrics.Overview(ctx, s.since(days))
	if err != nil {
		return nil, err
	}
	return &OverviewReport{Totals: *totals, PeriodDays: days}, nil
}

// Timeseries returns per-day values for one metric over the period window,
// ascending by day, with the trend percentage between the first and last
// points present in the series.
func (s *Reporting) Timeseries(ctx context.Context, period, metric string) (*TimeseriesReport, error) {
	days := PeriodDays(period)
	metric = NormalizeMetric(metric)
	since := s.since(days)

	var points []domain.TimeseriesPoint
	var err error
	if metric == MetricClicks {
		points, err = s.metrics.TagTimeseries(ctx, since)
	} else {
		points, err = s.metrics.NewsTimeseries(ctx, since, metric)
	}
	if err != nil {
		return nil, err
	}

	return &TimeseriesReport{Points: points, Trend: trendPercentage(points)}, nil
}

// trendPercentage compares the earliest and latest points of the series.
// 0→N is reported as a flat 100% to keep the dashboard's "started from
// nothing" convention; an empty series has no trend at all.
func trendPercentage(points []domain.TimeseriesPoint) *float64 {
	if len(points) == 0 {
		return nil
	}
	first := float64(points[0].Value)
	last := float64(points[len(points)-1].Value)

	var pct float64
	switch {
	case first > 0:
		pct = (last - first) / first * 100
	case last > 0:
		pct = 100
	default:
		pct = 0
	}
	pct = math.Round(pct*10) / 10
	return &pct
}

// Ranking returns the top entries for one metric over the period window.
// Views and shares group by article and are enriched with its metadata;
// clicks group by tag. Articles deleted since the counts were written stay in
// the ranking with empty metadata.
func (s *Reporting) Ranking(ctx context.Context, period, metric string, limit int) (*RankingReport, error) {
	days := PeriodDays(period)
	metric = NormalizeMetric(metric)
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	if limit > maxRankingLimit {
		limit = maxRankingLimit
	}
	since := s.since(days)

	if metric == MetricClicks {
		rows, err := s.metrics.TagRanking(ctx, since, limit)
		if err != nil {
			return nil, err
		}
		entries := make([]RankingEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, RankingEntry{NewsID: "N/A", Title: row.Tag, Total: row.Total})
		}
		return &RankingReport{Entries: entries, Metric: metric, PeriodDays: days}, nil
	}

	rows, err := s.metrics.NewsRanking(ctx, since, metric, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]RankingEntry, 0, len(rows))
	for _, row := range rows {
		entry := RankingEntry{NewsID: row.NewsID, Total: row.Total}
		item, err := s.news.GetMeta(ctx, row.NewsID)
		switch {
		case err == nil:
			entry.Slug = item.Slug
			entry.Title = item.Title
			entry.PublishedAt = item.PublishedAt
		case errors.Is(err, domain.ErrNotFound):
			// article deleted after the counts were written; keep the row bare
		default:
			s.logger.Error().Err(err).Str("news_id", row.NewsID).Msg("ranking enrichment failed")
		}
		entries = append(entries, entry)
	}
	return &RankingReport{Entries: entries, Metric: metric, PeriodDays: days}, nil
}
