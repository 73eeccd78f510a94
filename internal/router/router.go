package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dkoval-dev/goblog/internal/config"
	"github.com/dkoval-dev/goblog/internal/handler"
	mw "github.com/dkoval-dev/goblog/internal/middleware"
	"github.com/dkoval-dev/goblog/internal/middleware/metrics"
)

// New creates and configures the chi router with all the routes.
func New(h *handler.Handler, sessionMw *mw.Session, cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Use(mw.Recover)
	r.Use(metrics.Middleware)

	// The browser client is served from a different origin; cookies must be
	// allowed through.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Every application route runs behind the session middleware: the
	// signed cookie is resolved (or a fresh anonymous session minted)
	// before any handler sees the request.
	r.Group(func(r chi.Router) {
		r.Use(sessionMw.Handler)

		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)

		r.Get("/blogs/page/{page}", h.ListBlogs)
		r.Post("/blogs", h.CreateBlog)
		r.Get("/blog/{author}/{year}/{month}/{day}/{blogtitle}", h.GetBlog)
	})

	return r
}
