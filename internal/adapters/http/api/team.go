// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/go-playground/validator/v10"
)

// TeamHandler reads and writes the device-wide team preference.
type TeamHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps Dependencies, validate *validator.Validate) *TeamHandler {
	return &TeamHandler{deps: deps, validate: validate}
}

type teamResponse struct {
	Team     string `json:"team"`
	Selected bool   `json:"selected"`
}

type setTeamRequest struct {
	Team string `json:"team" validate:"required,oneof=cats dogs"`
}

// HandleTeam handles GET /team and PUT /team requests.
func (h *TeamHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		team, ok, err := h.deps.Team(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "team_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, teamResponse{Team: string(team), Selected: ok})
	case http.MethodPut:
		var req setTeamRequest
		if err := decodeJSON(r, h.validate, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_team", err)
			return
		}
		team, _ := model.ParseTeam(req.Team)
		if err := h.deps.SetTeam(r.Context(), team); err != nil {
			writeError(w, http.StatusInternalServerError, "team_failed", err)
			return
		}
		writeJSON(w, http.StatusOK, teamResponse{Team: string(team), Selected: true})
	default:
		http.NotFound(w, r)
	}
}
