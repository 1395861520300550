package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/api"
	"github.com/promptboard/promptboard/internal/board"
	"github.com/promptboard/promptboard/internal/cache"
	"github.com/promptboard/promptboard/internal/config"
	"github.com/promptboard/promptboard/internal/database"
	"github.com/promptboard/promptboard/internal/storage"
	"github.com/promptboard/promptboard/internal/storage/memory"
	"github.com/promptboard/promptboard/internal/storage/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Database connection; fall back to the in-memory store so the API
	// still comes up (non-durable) when Postgres is unreachable.
	var store storage.Storage
	var pool *pgxpool.Pool
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database unavailable, using in-memory storage", "error", err)
		store = memory.New()
	} else {
		pool = db
		defer db.Close()

		if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		store = postgres.New(db)
	}

	// Redis is optional; only the diagnostic surface uses it.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
	}
	defer rdb.Close()

	usernames := anon.NewGenerator(cfg.Board.Adjectives, cfg.Board.Nouns)
	svc := board.NewService(store, usernames, board.Limits{
		MaxPrompts:  cfg.Board.MaxPrompts,
		MaxComments: cfg.Board.MaxComments,
		PageSize:    cfg.Board.PageSize,
		MaxPageSize: cfg.Board.MaxPageSize,
	})

	router := api.NewRouter(svc, pool, cache.NewCache(rdb), cfg)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
