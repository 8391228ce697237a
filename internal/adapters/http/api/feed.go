// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/format"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

// FeedHandler serves the post feed, optionally filtered and ranked.
type FeedHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(deps Dependencies, maxLimit int) *FeedHandler {
	return &FeedHandler{deps: deps, maxLimit: maxLimit}
}

type feedItem struct {
	ID         string  `json:"id"`
	Team       string  `json:"team"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	Likes      int     `json:"likes"`
	LikesLabel string  `json:"likesLabel"`
	CreatedAt  string  `json:"createdAt"`
	PostedOn   string  `json:"postedOn"`
	ImageURL   *string `json:"imageUrl"`
}

type feedResponse struct {
	Posts []feedItem `json:"posts"`
	Count int        `json:"count"`
}

// HandleGetFeed handles GET /feed requests. The team query parameter
// filters by side, sort=top ranks by likes, and limit caps the result.
func (h *FeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var team model.Team
	if raw := r.URL.Query().Get("team"); raw != "" {
		parsed, ok := model.ParseTeam(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_team", ErrBadRequest)
			return
		}
		team = parsed
	}

	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", ErrBadRequest)
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	var (
		list []model.Post
		err  error
	)
	if r.URL.Query().Get("sort") == "top" {
		list, err = h.deps.TopPosts(r.Context(), team, limit)
	} else {
		list, err = h.deps.Posts(r.Context(), team)
		if len(list) > limit {
			list = list[:limit]
		}
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "feed_failed", err)
		return
	}

	items := make([]feedItem, 0, len(list))
	for _, p := range list {
		items = append(items, feedItem{
			ID:         p.ID,
			Team:       string(p.Team),
			Author:     p.Author,
			Title:      p.Title,
			Body:       format.Truncate(p.Body, 280),
			Likes:      p.Likes,
			LikesLabel: format.LikesLabel(p.Likes),
			CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
			PostedOn:   format.MDY(p.CreatedAt),
			ImageURL:   p.ImageURL,
		})
	}

	writeJSON(w, http.StatusOK, feedResponse{Posts: items, Count: len(items)})
}
