package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plastinin/recipefinder/internal/adapter/http/handler"
	httpmiddleware "github.com/plastinin/recipefinder/internal/adapter/http/middleware"
	"go.uber.org/zap"
)

// Handlers обработчики, из которых собирается роутер
type Handlers struct {
	Search  *handler.SearchHandler
	Profile *handler.ProfileHandler
	Order   *handler.OrderHandler
	Store   *handler.StoreHandler
	Session *handler.SessionHandler
	Health  *handler.HealthHandler
}

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(h Handlers, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.NewLoggingMiddleware(logger, "/health"))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Health check (вне версионирования API)
	r.Get("/health", h.Health.Check)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Post("/", h.Search.Create)
			r.Get("/{id}", h.Search.GetByID)
			r.Put("/{id}", h.Search.Resubmit)
			r.Post("/{id}/navigate", h.Search.Navigate)
		})

		r.Route("/users/{uid}", func(r chi.Router) {
			r.Get("/cart", h.Profile.GetCart)
			r.Post("/cart", h.Profile.AddToCart)
			r.Delete("/cart", h.Profile.ClearCart)

			r.Get("/daily-value", h.Profile.GetDailyValue)
			r.Put("/daily-value", h.Profile.SaveDailyValue)
			r.Post("/chart", h.Profile.Chart)

			r.Post("/orders", h.Order.Create)
			r.Get("/orders", h.Order.List)
			r.Get("/orders/{id}", h.Order.GetByID)
		})

		r.Get("/stores", h.Store.List)

		r.Route("/session/{sid}", func(r chi.Router) {
			r.Get("/", h.Session.Get)
			r.Post("/actions", h.Session.Dispatch)
		})
	})

	return r
}
