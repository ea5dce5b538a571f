package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"server/internal/analytics"
	"server/internal/auth"
	"server/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type incrementCall struct {
	day    string
	key    string
	views  int
	shares int
	clicks int
}

type stubMetricsRepo struct {
	increments []incrementCall
	totals     domain.OverviewTotals
	series     []domain.TimeseriesPoint
	ranking    []domain.RankingRow
	tagRanking []domain.RankingRow
	lastLimit  int
}

func (s *stubMetricsRepo) IncrementNewsMetric(_ context.Context, day, newsID string, views, shares int) error {
	s.increments = append(s.increments, incrementCall{day: day, key: newsID, views: views, shares: shares})
	return nil
}

func (s *stubMetricsRepo) IncrementTagMetric(_ context.Context, day, tag string, clicks int) error {
	s.increments = append(s.increments, incrementCall{day: day, key: tag, clicks: clicks})
	return nil
}

func (s *stubMetricsRepo) Overview(context.Context, string) (*domain.OverviewTotals, error) {
	totals := s.totals
	return &totals, nil
}

func (s *stubMetricsRepo) NewsTimeseries(context.Context, string, string) ([]domain.TimeseriesPoint, error) {
	return s.series, nil
}

func (s *stubMetricsRepo) TagTimeseries(context.Context, string) ([]domain.TimeseriesPoint, error) {
	return s.series, nil
}

func (s *stubMetricsRepo) NewsRanking(_ context.Context, _, _ string, limit int) ([]domain.RankingRow, error) {
	s.lastLimit = limit
	return s.ranking, nil
}

func (s *stubMetricsRepo) TagRanking(_ context.Context, _ string, limit int) ([]domain.RankingRow, error) {
	s.lastLimit = limit
	return s.tagRanking, nil
}

type stubNewsRepo struct {
	items map[string]*domain.NewsItem // keyed by id
}

func (s *stubNewsRepo) ResolveSlug(_ context.Context, slug string) (string, error) {
	for _, item := range s.items {
		if item.Slug == slug {
			return item.ID, nil
		}
	}
	return "", domain.ErrNotFound
}

func (s *stubNewsRepo) GetMeta(_ context.Context, id string) (*domain.NewsItem, error) {
	if item, ok := s.items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubNewsRepo) ListPublished(context.Context, int, int) ([]domain.NewsItem, error) {
	out := []domain.NewsItem{}
	for _, item := range s.items {
		if item.Status == domain.NewsPublished {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubNewsRepo) GetPublishedBySlug(_ context.Context, slug string) (*domain.NewsItem, error) {
	for _, item := range s.items {
		if item.Slug == slug && item.Status == domain.NewsPublished {
			return item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubNewsRepo) List(context.Context) ([]domain.NewsItem, error) {
	out := []domain.NewsItem{}
	for _, item := range s.items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubNewsRepo) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	return s.GetMeta(ctx, id)
}

func (s *stubNewsRepo) Create(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	clone := *item
	clone.ID = "news-created"
	clone.CreatedAt = testNow
	clone.UpdatedAt = testNow
	s.items[clone.ID] = &clone
	return &clone, nil
}

func (s *stubNewsRepo) Update(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	existing, ok := s.items[item.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *item
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = testNow
	s.items[clone.ID] = &clone
	return &clone, nil
}

func (s *stubNewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type stubSessionRepo struct {
	sessions map[string]*domain.Session // keyed by token hash
}

func (s *stubSessionRepo) Create(_ context.Context, session *domain.Session) error {
	clone := *session
	clone.ID = "session-1"
	s.sessions[clone.TokenHash] = &clone
	return nil
}

func (s *stubSessionRepo) FindLive(_ context.Context, tokenHash string, now time.Time) (*domain.Session, error) {
	session, ok := s.sessions[tokenHash]
	if !ok || !session.Live(now) {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *stubSessionRepo) Revoke(_ context.Context, tokenHash string, at time.Time) error {
	if session, ok := s.sessions[tokenHash]; ok && session.RevokedAt == nil {
		session.RevokedAt = &at
	}
	return nil
}

func (s *stubSessionRepo) DeleteDeadBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubUserRepo struct {
	users map[string]*domain.AdminUser // keyed by id
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) TouchLastLogin(context.Context, string, time.Time) error {
	return nil
}

type testEnv struct {
	app      *App
	metrics  *stubMetricsRepo
	news     *stubNewsRepo
	sessions *stubSessionRepo
	users    *stubUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	publishedAt := testNow.AddDate(0, 0, -3)
	metrics := &stubMetricsRepo{}
	news := &stubNewsRepo{items: map[string]*domain.NewsItem{
		"news-1": {
			ID:          "news-1",
			Slug:        "launch-day",
			Title:       "Launch Day",
			Status:      domain.NewsPublished,
			PublishedAt: &publishedAt,
			CreatedAt:   publishedAt,
			UpdatedAt:   publishedAt,
		},
	}}
	sessions := &stubSessionRepo{sessions: map[string]*domain.Session{}}
	users := &stubUserRepo{users: map[string]*domain.AdminUser{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", PasswordHash: string(hash), Role: "admin"},
	}}

	logger := zerolog.Nop()
	app := &App{
		Logger:    logger,
		Auth:      auth.NewService(sessions, users, testClock, 24*time.Hour, logger),
		Tracker:   analytics.NewTracker(metrics, news, testClock),
		Reporting: analytics.NewReporting(metrics, news, testClock, logger),
		News:      news,
	}
	return &testEnv{app: app, metrics: metrics, news: news, sessions: sessions, users: users}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rr, &payload)
	return payload.Error.Code
}
