package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rahulelano/events-backend/internal/auth"
	"github.com/Rahulelano/events-backend/internal/config"
	"github.com/Rahulelano/events-backend/internal/logging"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Bookings   *BookingHandler
	Events     *EventHandler
	Categories *CategoryHandler
	Discounts  *DiscountHandler
	Admin      *AdminHandler
	Gate       *auth.Gate
}

// NewRouter builds the chi router with the full middleware stack and all
// routes mounted under /api.
func NewRouter(cfg config.SecurityConfig, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Events.List)
			r.Get("/hero", h.Events.Hero)
			r.Get("/hero-slider", h.Events.HeroSlider)
			r.Get("/{id}", h.Events.Get)
		})
		r.Get("/categories", h.Categories.List)
		r.Route("/discounts", func(r chi.Router) {
			r.Get("/", h.Discounts.List)
			r.Get("/featured", h.Discounts.Featured)
			r.Get("/{id}", h.Discounts.Get)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.Bookings.Create)
			r.Get("/reference/{reference}", h.Bookings.GetByReference)

			r.Group(func(r chi.Router) {
				r.Use(h.Gate.RequireAdmin)
				r.Get("/", h.Bookings.List)
				r.Put("/{id}/cancel", h.Bookings.Cancel)
			})
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.With(httprate.LimitByIP(cfg.LoginRateLimit, cfg.LoginRateWindow)).
				Post("/login", h.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(h.Gate.RequireAdmin)
				r.Get("/verify", h.Admin.Verify)
				r.Get("/dashboard/stats", h.Admin.Dashboard)

				r.Post("/events", h.Events.Create)
				r.Put("/events/{id}", h.Events.Update)
				r.Delete("/events/{id}", h.Events.Delete)

				r.Post("/categories", h.Categories.Create)
				r.Put("/categories/{id}", h.Categories.Update)
				r.Delete("/categories/{id}", h.Categories.Delete)

				r.Post("/discounts", h.Discounts.Create)
				r.Put("/discounts/{id}", h.Discounts.Update)
				r.Delete("/discounts/{id}", h.Discounts.Delete)
			})
		})
	})

	return r
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
