package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/openshelf/branch-events/internal/config"
	"github.com/openshelf/branch-events/internal/metrics"
	"github.com/openshelf/branch-events/internal/transport/http/handlers"
	appmw "github.com/openshelf/branch-events/internal/transport/http/middleware"
)

func New(
	ev *handlers.EventsHandler,
	loc *handlers.LocationsHandler,
	ct *handlers.ContactHandler,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.AccessLog)
	r.Use(appmw.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", appmw.HeaderXRequestID},
		MaxAge:         300,
	}))

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events/calendar", ev.Calendar)
		r.Get("/events/recent", ev.Recent)

		r.Get("/locations", loc.List)
		r.Get("/locations/resolve", loc.Resolve)
		r.Get("/locations/nearby", loc.Nearby)

		r.Post("/contact", ct.Submit)
	})

	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		r.Handle("/*", fs)
	}

	return r
}
