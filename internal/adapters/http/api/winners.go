// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

// WinnersHandler serves the archived winner history.
type WinnersHandler struct {
	deps Dependencies
}

// NewWinnersHandler creates a new winners handler.
func NewWinnersHandler(deps Dependencies) *WinnersHandler {
	return &WinnersHandler{deps: deps}
}

type winnersResponse struct {
	Winners []model.Winner `json:"winners"`
	Count   int            `json:"count"`
}

// HandleWinners handles GET /winners and DELETE /winners requests.
func (h *WinnersHandler) HandleWinners(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.deps.Winners(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "winners_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, winnersResponse{Winners: list, Count: len(list)})
	case http.MethodDelete:
		if err := h.deps.ClearWinners(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "clear_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}
