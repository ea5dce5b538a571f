package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires every route behind the shared middleware stack. Admin
// routes other than login/logout sit behind the session guard.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Get("/news", app.PublicNewsList)
		r.Get("/news/{slug}", app.PublicNewsBySlug)

		r.With(middleware.RateLimit(cfg.EventRatePerMinute, time.Minute)).
			Post("/events", app.TrackEvent)

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.RateLimit(cfg.LoginRateLimit, cfg.LoginRateWindow)).
				Post("/auth/login", app.Login)
			r.Post("/auth/logout", app.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession(app.Auth, cfg.CookieSecure))

				r.Get("/auth/me", app.Me)

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/overview", app.AnalyticsOverview)
					r.Get("/timeseries", app.AnalyticsTimeseries)
					r.Get("/ranking", app.AnalyticsRanking)
				})

				r.Route("/news", func(r chi.Router) {
					r.Get("/", app.AdminNewsList)
					r.Post("/", app.AdminNewsCreate)
					r.Get("/{id}", app.AdminNewsGet)
					r.Put("/{id}", app.AdminNewsUpdate)
					r.Delete("/{id}", app.AdminNewsDelete)
				})
			})
		})
	})

	return r
}
