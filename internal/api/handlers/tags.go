package handlers

import (
	"net/http"

	"github.com/promptboard/promptboard/internal/board"
)

type TagHandler struct {
	svc *board.Service
}

func NewTagHandler(svc *board.Service) *TagHandler {
	return &TagHandler{svc: svc}
}

// List returns every distinct tag in use, sorted. Casing variants are
// separate entries by design.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
