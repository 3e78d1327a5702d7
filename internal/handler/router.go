// Package handler provides the HTTP layer for the BlogAPI server.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/metrics"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

// RouterConfig contains the dependencies for the router.
type RouterConfig struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	BlogHandler    *BlogHandler
	TagHandler     *TagHandler
	CommentHandler *CommentHandler

	// TokenVerifier resolves bearer tokens into actors. Requests
	// without a token proceed as guests.
	TokenVerifier auth.Verifier

	// Health is pinged by GET /health.
	Health repository.DatabaseHealth

	// Metrics instruments requests when non-nil.
	Metrics *metrics.Metrics

	// Cache backs the GET response cache when non-nil.
	Cache    repository.Cache
	CacheTTL time.Duration

	// RateLimit bounds requests per IP per window when Requests > 0.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	Logger zerolog.Logger
}

// NewRouter builds the chi router with the full middleware chain and
// all API routes mounted under /api/v1.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger.With().Str("component", "router").Logger()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	if cfg.RateLimitRequests > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Use(auth.Middleware(cfg.TokenVerifier))

	r.Get("/health", healthHandler(cfg.Health))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(auth.RequireAuth).Put("/password", cfg.AuthHandler.UpdatePassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(auth.RequireAdmin).Get("/", cfg.UserHandler.List)
			r.With(auth.RequireAuth).Get("/me", cfg.UserHandler.Me)
			r.With(auth.RequireAuth).Put("/me/picture", cfg.UserHandler.UploadPicture)
			r.Get("/{id}", cfg.UserHandler.Get)
			r.With(auth.RequireAuth).Put("/{id}", cfg.UserHandler.Update)
			r.With(auth.RequireAuth).Delete("/{id}", cfg.UserHandler.Delete)
			r.With(auth.RequireAdmin).Patch("/{id}/active", cfg.UserHandler.SetActive)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.Cache != nil {
					r.Use(ResponseCache(cfg.Cache, cfg.CacheTTL, logger))
				}
				r.Get("/", cfg.BlogHandler.ListPublished)
				r.Get("/stats", cfg.BlogHandler.Stats)
			})
			r.With(auth.RequireAdmin).Get("/all", cfg.BlogHandler.ListAll)
			r.Get("/user/{id}", cfg.BlogHandler.ListByAuthor)
			r.Get("/{id}", cfg.BlogHandler.Get)
			r.With(auth.RequireAuth).Post("/", cfg.BlogHandler.Create)
			r.With(auth.RequireAuth).Put("/{id}", cfg.BlogHandler.Update)
			r.With(auth.RequireAuth).Patch("/{id}/publish", cfg.BlogHandler.SetPublished)
			r.With(auth.RequireAuth).Put("/{id}/image", cfg.BlogHandler.UploadImage)
			r.With(auth.RequireAuth).Delete("/{id}", cfg.BlogHandler.Delete)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.Cache != nil {
					r.Use(ResponseCache(cfg.Cache, cfg.CacheTTL, logger))
				}
				r.Get("/", cfg.TagHandler.List)
			})
			r.Get("/{id}", cfg.TagHandler.Get)
			r.With(auth.RequireAuth).Post("/", cfg.TagHandler.Create)
			r.With(auth.RequireAuth).Put("/{id}", cfg.TagHandler.Update)
			r.With(auth.RequireAdmin).Delete("/{id}", cfg.TagHandler.Delete)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/blog/{id}", cfg.CommentHandler.ListByBlog)
			r.With(auth.RequireAuth).Get("/me", cfg.CommentHandler.ListMine)
			r.Get("/{id}", cfg.CommentHandler.Get)
			r.With(auth.RequireAuth).Post("/", cfg.CommentHandler.Create)
			r.With(auth.RequireAuth).Put("/{id}", cfg.CommentHandler.Update)
			r.With(auth.RequireAuth).Delete("/{id}", cfg.CommentHandler.Delete)
		})
	})

	return r
}

// healthHandler reports service and database health.
func healthHandler(health repository.DatabaseHealth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		dbStatus := "up"

		if err := health.Ping(r.Context()); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		writeJSON(w, code, map[string]string{
			"status":   status,
			"database": dbStatus,
		})
	}
}
