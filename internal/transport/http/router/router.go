package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/evently/event-actions-service/internal/config"
	"github.com/evently/event-actions-service/internal/metrics"
	"github.com/evently/event-actions-service/internal/transport/http/handlers"
	authmw "github.com/evently/event-actions-service/internal/transport/http/middleware"
)

func New(
	h *handlers.ActionsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/actions/v1", func(r chi.Router) {
		// Read endpoints are viewer-sensitive but never viewer-gated:
		// an anonymous caller still gets a (mostly disabled) list.
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/events/{event_id}/actions", h.GetActions)
			r.Get("/events/{event_id}/actions/primary", h.GetPrimary)
			r.Get("/events/{event_id}/badge", h.GetBadge)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/evaluate", h.Evaluate)
		})
	})

	return r
}
