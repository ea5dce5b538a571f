package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/analytics"
	"server/internal/auth"
	"server/internal/domain"
	"server/internal/infra/geoip"

	"github.com/rs/zerolog"
)

// App bundles the wired services the HTTP handlers depend on.
type App struct {
	Logger       zerolog.Logger
	Auth         *auth.Service
	Tracker      *analytics.Tracker
	Reporting    *analytics.Reporting
	News         domain.NewsRepository
	GeoIP        geoip.CountryResolver
	CookieSecure bool
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
