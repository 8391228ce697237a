// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/go-playground/validator/v10"
)

// ProfileHandler reads and writes per-user profile fields.
type ProfileHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps Dependencies, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{deps: deps, validate: validate}
}

type saveProfileRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=64"`
	Email    string  `json:"email" validate:"required,email"`
	PhotoURI *string `json:"photoUri" validate:"omitempty,max=2048"`
}

// HandleProfile handles GET, PUT and DELETE /profile requests. The acting
// user is identified by the user query parameter on all three.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing_user", ErrMissingUser)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.deps.Profile(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "profile_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var req saveProfileRequest
		if err := decodeJSON(r, h.validate, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_profile", err)
			return
		}
		p := model.Profile{Username: req.Username, Email: req.Email, PhotoURI: req.PhotoURI}
		if err := h.deps.SaveProfile(r.Context(), userID, p); err != nil {
			writeError(w, http.StatusInternalServerError, "profile_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.deps.ClearProfile(r.Context(), userID); err != nil {
			writeError(w, http.StatusInternalServerError, "profile_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}
