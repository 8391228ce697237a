// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// AccountHandler handles account-wide destructive operations.
type AccountHandler struct {
	deps Dependencies
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(deps Dependencies) *AccountHandler {
	return &AccountHandler{deps: deps}
}

// HandleDeleteAccount handles DELETE /account requests. It wipes the
// user's posts, team preference, profile fields and vote record.
func (h *AccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing_user", ErrMissingUser)
		return
	}

	if err := h.deps.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
