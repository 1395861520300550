package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptboard/promptboard/internal/cache"
)

type HealthHandler struct {
	db    *pgxpool.Pool
	cache *cache.Cache
}

// NewHealthHandler accepts nil collaborators; the API can run degraded
// without a database or Redis.
func NewHealthHandler(db *pgxpool.Pool, c *cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

// Root is the API banner: a liveness signal plus a database connectivity
// report.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not configured"
	status := http.StatusOK
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		} else {
			dbStatus = "ok"
		}
	}
	writeJSON(w, status, map[string]string{
		"status":              "ok",
		"message":             "promptboard API is running",
		"database_connection": dbStatus,
	})
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}
