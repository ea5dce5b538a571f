package handlers

import (
	"net/http"
	"strconv"
	"time"
)

const timeLayout = time.RFC3339

type timeseriesPointDTO struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

type rankingEntryDTO struct {
	NewsID      string `json:"newsId"`
	Slug        string `json:"slug,omitempty"`
	Title       string `json:"title,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Total       int64  `json:"total"`
}

// AnalyticsOverview returns headline totals for the dashboard.
func (a *App) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	report, err := a.Reporting.Overview(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		a.Logger.Error().Err(err).Msg("analytics overview failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load overview")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"totals": map[string]int64{
			"views":  report.Totals.Views,
			"shares": report.Totals.Shares,
			"clicks": report.Totals.Clicks,
		},
		"period": report.PeriodDays,
	})
}

// AnalyticsTimeseries returns a per-day series plus its trend percentage.
// The trend field is omitted entirely when the series is empty.
func (a *App) AnalyticsTimeseries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := a.Reporting.Timeseries(r.Context(), q.Get("period"), q.Get("metric"))
	if err != nil {
		a.Logger.Error().Err(err).Msg("analytics timeseries failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load timeseries")
		return
	}

	data := make([]timeseriesPointDTO, 0, len(report.Points))
	for _, p := range report.Points {
		data = append(data, timeseriesPointDTO{Date: p.Date, Value: p.Value})
	}

	body := map[string]any{"data": data}
	if report.Trend != nil {
		body["changePercentage"] = *report.Trend
	}
	a.json(w, http.StatusOK, body)
}

// AnalyticsRanking returns the top articles (or tags, for clicks) by metric.
func (a *App) AnalyticsRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	report, err := a.Reporting.Ranking(r.Context(), q.Get("period"), q.Get("metric"), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("analytics ranking failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load ranking")
		return
	}

	data := make([]rankingEntryDTO, 0, len(report.Entries))
	for _, e := range report.Entries {
		dto := rankingEntryDTO{NewsID: e.NewsID, Slug: e.Slug, Title: e.Title, Total: e.Total}
		if e.PublishedAt != nil {
			dto.PublishedAt = e.PublishedAt.UTC().Format(timeLayout)
		}
		data = append(data, dto)
	}
	a.json(w, http.StatusOK, map[string]any{
		"data":   data,
		"metric": report.Metric,
		"period": report.PeriodDays,
	})
}
