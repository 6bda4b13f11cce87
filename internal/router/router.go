package router

import (
	"toy-marketplace-api/internal/handler"
	"toy-marketplace-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	HealthHandler  *handler.HealthHandler
	ListingHandler *handler.ListingHandler
}

// New creates and configures the HTTP router. The route table is the legacy
// surface existing clients already call, preserved verbatim — including
// POST /toyslimit, a read behind a write-style method.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.HealthHandler != nil {
		r.Get("/", cfg.HealthHandler.Welcome)
		r.Get("/api/status", cfg.HealthHandler.Status)
	}

	if cfg.ListingHandler != nil {
		r.Post("/toyslimit", cfg.ListingHandler.ListLimited)
		r.Get("/sort", cfg.ListingHandler.ListSorted)

		r.Route("/toys", func(r chi.Router) {
			r.Get("/", cfg.ListingHandler.ListToys)
			r.Post("/", cfg.ListingHandler.AddToy)
			r.Get("/{id}", cfg.ListingHandler.GetToy)
			r.Patch("/{id}", cfg.ListingHandler.UpdateToy)
			r.Delete("/{id}", cfg.ListingHandler.DeleteToy)
		})
	}

	return r
}
