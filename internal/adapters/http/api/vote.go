// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/clawsandpaws/pawsd/internal/app"
	"github.com/go-playground/validator/v10"
)

// VoteHandler handles daily vote status and casting.
type VoteHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(deps Dependencies, validate *validator.Validate) *VoteHandler {
	return &VoteHandler{deps: deps, validate: validate}
}

type castVoteRequest struct {
	UserID string `json:"userId" validate:"required,min=1,max=64"`
	PostID string `json:"postId" validate:"required,min=1"`
}

// HandleGetStatus handles GET /vote/status requests.
func (h *VoteHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing_user", ErrMissingUser)
		return
	}

	status, err := h.deps.VoteStatus(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "status_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// HandleCastVote handles POST /vote and DELETE /vote requests. A second
// vote on the same day is rejected with a conflict status.
func (h *VoteHandler) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.castVote(w, r)
	case http.MethodDelete:
		h.clearVote(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *VoteHandler) castVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_vote", err)
		return
	}

	if err := h.deps.CastVote(r.Context(), req.UserID, req.PostID); err != nil {
		if errors.Is(err, app.ErrAlreadyVoted) {
			writeError(w, http.StatusConflict, "already_voted", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "vote_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *VoteHandler) clearVote(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing_user", ErrMissingUser)
		return
	}

	if err := h.deps.ClearVote(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "clear_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
