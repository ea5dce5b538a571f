package domain

import "time"

// EventKind enumerates trackable interaction types.
type EventKind string

const (
	EventView  EventKind = "view"
	EventClick EventKind = "click"
	EventShare EventKind = "share"
)

// TrackEvent is an inbound tracking event before classification. Clicks carry
// a Tag; views and shares carry either a NewsID or a Slug to resolve.
type TrackEvent struct {
	Kind   EventKind
	NewsID string
	Slug   string
	Tag    string
}

// DailyNewsMetric is one row of per-article daily counters. At most one row
// exists per (Day, NewsID); counts only ever grow within a day.
type DailyNewsMetric struct {
	Day    string
	NewsID string
	Views  int
	Shares int
}

// DailyTagMetric counts clicks on a UI element per day, independent of any
// article.
type DailyTagMetric struct {
	Day    string
	Tag    string
	Clicks int
}

// OverviewTotals aggregates all counters over a reporting window.
type OverviewTotals struct {
	Views  int64
	Shares int64
	Clicks int64
}

// TimeseriesPoint is one calendar day's aggregate within a window. Days with
// no rows are absent, not zero-valued.
type TimeseriesPoint struct {
	Date  string
	Value int64
}

// RankingRow is a grouped metric sum before enrichment. NewsID is set for
// view/share rankings, Tag for click rankings.
type RankingRow struct {
	NewsID string
	Tag    string
	Total  int64
}

// Clock supplies the current instant. Injected wherever a calendar day is
// derived so aggregation stays deterministic under test.
type Clock func() time.Time

// DayFormat is the canonical key format for daily counter rows.
const DayFormat = "2006-01-02"

// Today returns the current UTC calendar date in DayFormat.
func Today(clock Clock) string {
	return clock().UTC().Format(DayFormat)
}
