// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/posts"
	"github.com/go-playground/validator/v10"
)

// PostsHandler handles post creation and likes.
type PostsHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(deps Dependencies, validate *validator.Validate) *PostsHandler {
	return &PostsHandler{deps: deps, validate: validate}
}

type createPostRequest struct {
	Team     string  `json:"team" validate:"required,oneof=cats dogs"`
	Author   string  `json:"author" validate:"required,min=1,max=64"`
	Title    string  `json:"title" validate:"required,min=1,max=140"`
	Body     string  `json:"body" validate:"max=2000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
}

// HandleCreatePost handles POST /posts requests.
func (h *PostsHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, h.validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_post", err)
		return
	}
	team, _ := model.ParseTeam(req.Team)

	created, err := h.deps.CreatePost(r.Context(), posts.AddInput{
		Team:     team,
		Author:   req.Author,
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleLikePost handles POST /posts/{id}/like requests.
func (h *PostsHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/posts/")
	id, ok := strings.CutSuffix(rest, "/like")
	if !ok || id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.LikePost(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "like_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
