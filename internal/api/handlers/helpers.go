package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/promptboard/promptboard/internal/authz"
	"github.com/promptboard/promptboard/internal/board"
)

// decodeBody decodes a JSON request body. An empty body is not a decode
// error: a mutation request without a body simply carries no modification
// code and is denied by authorization, which must look identical to a wrong
// code from the outside.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto HTTP statuses. Both authorization
// failure modes (missing code, wrong code) produce an identical 403 body, and
// unexpected errors reach the client as a generic 500 with the detail kept
// server-side.
func writeError(w http.ResponseWriter, err error) {
	var ve *board.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": map[string]string{ve.Field: ve.Detail},
		})
	case errors.Is(err, board.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, authz.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid or missing modification code"})
	case errors.Is(err, board.ErrCapacityExceeded):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "board is at capacity"})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
