package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/promptboard/promptboard/internal/cache"
)

// CacheTestHandler is a diagnostic endpoint that round-trips a value and an
// increment through the cache. It exists to verify the Redis deployment;
// nothing in the board core depends on it.
type CacheTestHandler struct {
	cache *cache.Cache
}

func NewCacheTestHandler(c *cache.Cache) *CacheTestHandler {
	return &CacheTestHandler{cache: c}
}

func (h *CacheTestHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "cache test failed",
			"error":  "cache not configured",
		})
		return
	}

	ctx := r.Context()
	setValue := fmt.Sprintf("cache set at %d", time.Now().Unix())

	if err := h.cache.Set(ctx, "cache_test_key", setValue, time.Minute); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "cache test failed",
			"error":  err.Error(),
		})
		return
	}

	var retrieved string
	if err := h.cache.Get(ctx, "cache_test_key", &retrieved); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "cache test failed",
			"error":  err.Error(),
		})
		return
	}

	count, err := h.cache.Increment(ctx, "cache_test_counter")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "cache test failed",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "cache test successful",
		"set_value":       setValue,
		"retrieved_value": retrieved,
		"increment_count": count,
	})
}
