package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptboard/promptboard/internal/api/handlers"
	"github.com/promptboard/promptboard/internal/api/middleware"
	"github.com/promptboard/promptboard/internal/board"
	"github.com/promptboard/promptboard/internal/cache"
	"github.com/promptboard/promptboard/internal/config"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	cache *cache.Cache
	cfg   *config.Config
	svc   *board.Service
}

// NewRouter wires the HTTP surface over the board service. db and cache may
// be nil when the server runs degraded.
func NewRouter(svc *board.Service, db *pgxpool.Pool, c *cache.Cache, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		cache: c,
		cfg:   cfg,
		svc:   svc,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	// Writes are rate limited per client IP; the board core never
	// re-implements this and never sees a limited request.
	rl := middleware.NewRateLimiter(rt.cfg.RateLimit.WriteRPS, rt.cfg.RateLimit.WriteBurst)
	r.Use(rl.LimitWrites)

	health := handlers.NewHealthHandler(rt.db, rt.cache)
	r.Get("/", health.Root)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	cacheTest := handlers.NewCacheTestHandler(rt.cache)
	r.Get("/cache-test", cacheTest.Check)

	promptH := handlers.NewPromptHandler(rt.svc)
	commentH := handlers.NewCommentHandler(rt.svc)
	tagH := handlers.NewTagHandler(rt.svc)

	r.Route("/api", func(r chi.Router) {
		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptH.List)
			r.Post("/", promptH.Create)
			r.Get("/random", promptH.Random)
			r.Post("/batch", promptH.Batch)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", promptH.Get)
				r.Put("/", promptH.Update)
				r.Patch("/", promptH.Update)
				r.Delete("/", promptH.Delete)

				r.Get("/comments", commentH.List)
				r.Post("/comments", commentH.Create)
			})
		})

		r.Route("/comments/{id}", func(r chi.Router) {
			r.Get("/", commentH.Get)
			r.Put("/", commentH.Update)
			r.Patch("/", commentH.Update)
			r.Delete("/", commentH.Delete)
		})

		r.Get("/tags", tagH.List)
	})

	return r
}
