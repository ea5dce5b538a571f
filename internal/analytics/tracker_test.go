package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"server/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestTrackerRoutesClickToTagMetric(t *testing.T) {
	metrics := newFakeMetricsRepo()
	tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(testNow))

	ev := domain.TrackEvent{Kind: domain.EventClick, Tag: "hero-cta", NewsID: "ignored"}
	if err := tracker.Track(context.Background(), ev); err != nil {
		t.Fatalf("Track() unexpected error: %v", err)
	}

	if got := metrics.tagRows["2025-06-15"]["hero-cta"]; got != 1 {
		t.Fatalf("tag clicks = %d, want 1", got)
	}
	if len(metrics.newsRows) != 0 {
		t.Fatalf("click must not touch news metrics, got %#v", metrics.newsRows)
	}
}

func TestTrackerViewAndShareByID(t *testing.T) {
	metrics := newFakeMetricsRepo()
	tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(testNow))

	ctx := context.Background()
	if err := tracker.Track(ctx, domain.TrackEvent{Kind: domain.EventView, NewsID: "n1"}); err != nil {
		t.Fatalf("Track(view) error: %v", err)
	}
	if err := tracker.Track(ctx, domain.TrackEvent{Kind: domain.EventShare, NewsID: "n1"}); err != nil {
		t.Fatalf("Track(share) error: %v", err)
	}

	row := metrics.newsRows["2025-06-15"]["n1"]
	if row == nil || row.Views != 1 || row.Shares != 1 {
		t.Fatalf("news metric row = %+v, want views=1 shares=1", row)
	}
	if len(metrics.tagRows) != 0 {
		t.Fatalf("view/share must not touch tag metrics")
	}
}

func TestTrackerResolvesSlug(t *testing.T) {
	metrics := newFakeMetricsRepo()
	news := newFakeNewsRepo()
	news.add("n42", "big-announcement", "Big Announcement", nil)
	tracker := NewTracker(metrics, news, fixedClock(testNow))

	ev := domain.TrackEvent{Kind: domain.EventView, Slug: "big-announcement"}
	if err := tracker.Track(context.Background(), ev); err != nil {
		t.Fatalf("Track() error: %v", err)
	}
	if row := metrics.newsRows["2025-06-15"]["n42"]; row == nil || row.Views != 1 {
		t.Fatalf("resolved slug increment missing: %#v", metrics.newsRows)
	}
}

func TestTrackerInvalidEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   domain.TrackEvent
		want error
	}{
		{name: "click without tag", ev: domain.TrackEvent{Kind: domain.EventClick}, want: domain.ErrInvalidEvent},
		{name: "view without reference", ev: domain.TrackEvent{Kind: domain.EventView}, want: domain.ErrInvalidEvent},
		{name: "share without reference", ev: domain.TrackEvent{Kind: domain.EventShare}, want: domain.ErrInvalidEvent},
		{name: "view with unknown slug", ev: domain.TrackEvent{Kind: domain.EventView, Slug: "missing"}, want: domain.ErrInvalidReference},
		{name: "unknown kind", ev: domain.TrackEvent{Kind: "hover", Tag: "x"}, want: domain.ErrInvalidEvent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			metrics := newFakeMetricsRepo()
			tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(testNow))

			err := tracker.Track(context.Background(), tc.ev)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Track() error = %v, want %v", err, tc.want)
			}
			if len(metrics.newsRows) != 0 || len(metrics.tagRows) != 0 {
				t.Fatalf("invalid event must not write counters")
			}
		})
	}
}

func TestTrackerDayIsUTCCalendarDate(t *testing.T) {
	// 23:30 East-of-UTC local time is already the next day locally, but the
	// counter day must follow UTC.
	loc := time.FixedZone("UTC+9", 9*3600)
	at := time.Date(2025, 6, 16, 1, 30, 0, 0, loc) // 2025-06-15T16:30Z

	metrics := newFakeMetricsRepo()
	tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(at))

	if err := tracker.Track(context.Background(), domain.TrackEvent{Kind: domain.EventView, NewsID: "n1"}); err != nil {
		t.Fatalf("Track() error: %v", err)
	}
	if metrics.newsRows["2025-06-15"]["n1"] == nil {
		t.Fatalf("expected counter under UTC day 2025-06-15, got %#v", metrics.newsRows)
	}
}

func TestTrackerConcurrentIncrementsSameKey(t *testing.T) {
	const n = 64

	metrics := newFakeMetricsRepo()
	tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(testNow))

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = tracker.Track(context.Background(), domain.TrackEvent{Kind: domain.EventView, NewsID: "n1"})
		}()
	}
	wg.Wait()

	if got := metrics.newsRows["2025-06-15"]["n1"].Views; got != n {
		t.Fatalf("concurrent views = %d, want %d", got, n)
	}
}

func TestTrackerPropagatesStoreErrors(t *testing.T) {
	metrics := newFakeMetricsRepo()
	metrics.failWith = errors.New("connection reset")
	tracker := NewTracker(metrics, newFakeNewsRepo(), fixedClock(testNow))

	err := tracker.Track(context.Background(), domain.TrackEvent{Kind: domain.EventClick, Tag: "cta"})
	if err == nil || err.Error() != "connection reset" {
		t.Fatalf("Track() error = %v, want store error", err)
	}
}
