package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

type trackEventRequest struct {
	Type     string `json:"type"`
	NewsID   string `json:"newsId"`
	Slug     string `json:"slug"`
	Tag      string `json:"tag"`
	Metadata *struct {
		Tag string `json:"tag"`
	} `json:"metadata"`
}

// TrackEvent records one public interaction event. Validation happens before
// any counter write; a rejected event mutates nothing.
func (a *App) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_event", "invalid payload")
		return
	}

	tag := req.Tag
	if tag == "" && req.Metadata != nil {
		tag = req.Metadata.Tag
	}

	ev := domain.TrackEvent{
		Kind:   domain.EventKind(req.Type),
		NewsID: req.NewsID,
		Slug:   req.Slug,
		Tag:    tag,
	}

	if err := a.Tracker.Track(r.Context(), ev); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEvent):
			a.error(w, http.StatusBadRequest, "invalid_event", "click requires tag, view/share requires a news reference")
		case errors.Is(err, domain.ErrInvalidReference):
			a.error(w, http.StatusBadRequest, "invalid_reference", "unknown news reference")
		default:
			a.Logger.Error().Err(err).Msg("track event failed")
			a.error(w, http.StatusInternalServerError, "internal", "tracking failed")
		}
		return
	}

	a.logEvent(r, ev)
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) logEvent(r *http.Request, ev domain.TrackEvent) {
	entry := a.Logger.Debug().
		Str("kind", string(ev.Kind)).
		Str("news_id", ev.NewsID).
		Str("tag", ev.Tag)
	if a.GeoIP != nil {
		if country, err := a.GeoIP.CountryCode(middleware.ClientIP(r)); err == nil && country != "" {
			entry = entry.Str("country", country)
		}
	}
	entry.Msg("event tracked")
}
