// Package analytics holds the event classification and reporting core: public
// tracking events feed the daily counter tables, the admin dashboard reads
// them back as totals, series and rankings.
package analytics

import (
	"context"
	"errors"

	"server/internal/domain"
)

// Tracker classifies inbound tracking events and routes them to the right
// counter table. Exactly one row is created-or-incremented per successful
// call; validation failures write nothing.
type Tracker struct {
	metrics domain.MetricsRepository
	news    domain.NewsRepository
	clock   domain.Clock
}

// NewTracker constructs a Tracker. A nil clock defaults to UTC wall time.
func NewTracker(metrics domain.MetricsRepository, news domain.NewsRepository, clock domain.Clock) *Tracker {
	if clock == nil {
		clock = defaultClock
	}
	return &Tracker{metrics: metrics, news: news, clock: clock}
}

// Track validates and records one event. Clicks need a tag; views and shares
// need a news id or a resolvable slug. The counter day is always the current
// UTC calendar date, never supplied by the caller.
func (t *Tracker) Track(ctx context.Context, ev domain.TrackEvent) error {
	day := domain.Today(t.clock)

	switch ev.Kind {
	case domain.EventClick:
		if ev.Tag == "" {
			return domain.ErrInvalidEvent
		}
		return t.metrics.IncrementTagMetric(ctx, day, ev.Tag, 1)

	case domain.EventView, domain.EventShare:
		id := ev.NewsID
		if id == "" && ev.Slug != "" {
			resolved, err := t.news.ResolveSlug(ctx, ev.Slug)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrInvalidReference
				}
				return err
			}
			id = resolved
		}
		if id == "" {
			return domain.ErrInvalidEvent
		}
		views, shares := 0, 0
		if ev.Kind == domain.EventView {
			views = 1
		} else {
			shares = 1
		}
		return t.metrics.IncrementNewsMetric(ctx, day, id, views, shares)

	default:
		return domain.ErrInvalidEvent
	}
}
