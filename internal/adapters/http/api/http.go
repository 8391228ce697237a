// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/posts"
	"github.com/clawsandpaws/pawsd/internal/votes"
	"github.com/go-playground/validator/v10"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Posts(ctx context.Context, t model.Team) ([]model.Post, error)
	TopPosts(ctx context.Context, t model.Team, limit int) ([]model.Post, error)
	CreatePost(ctx context.Context, in posts.AddInput) (model.Post, error)
	LikePost(ctx context.Context, id string) error

	VoteStatus(ctx context.Context, userID string) (votes.Status, error)
	CastVote(ctx context.Context, userID, postID string) error
	ClearVote(ctx context.Context, userID string) error

	Winners(ctx context.Context) ([]model.Winner, error)
	ClearWinners(ctx context.Context) error

	Team(ctx context.Context) (model.Team, bool, error)
	SetTeam(ctx context.Context, t model.Team) error

	Profile(ctx context.Context, userID string) (model.Profile, error)
	SaveProfile(ctx context.Context, userID string, p model.Profile) error
	ClearProfile(ctx context.Context, userID string) error

	DeleteAccount(ctx context.Context, userID string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	feedHandler    *FeedHandler
	postsHandler   *PostsHandler
	voteHandler    *VoteHandler
	winnersHandler *WinnersHandler
	teamHandler    *TeamHandler
	profileHandler *ProfileHandler
	accountHandler *AccountHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxFeedLimit int) *Server {
	validate := validator.New()
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		feedHandler:    NewFeedHandler(deps, maxFeedLimit),
		postsHandler:   NewPostsHandler(deps, validate),
		voteHandler:    NewVoteHandler(deps, validate),
		winnersHandler: NewWinnersHandler(deps),
		teamHandler:    NewTeamHandler(deps, validate),
		profileHandler: NewProfileHandler(deps, validate),
		accountHandler: NewAccountHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/feed", MetricsMiddleware(s.feedHandler.HandleGetFeed, "feed"))
	mux.HandleFunc("/posts", MetricsMiddleware(s.postsHandler.HandleCreatePost, "posts"))
	mux.HandleFunc("/posts/", MetricsMiddleware(s.postsHandler.HandleLikePost, "like"))
	mux.HandleFunc("/vote/status", MetricsMiddleware(s.voteHandler.HandleGetStatus, "vote_status"))
	mux.HandleFunc("/vote", MetricsMiddleware(s.voteHandler.HandleCastVote, "vote"))
	mux.HandleFunc("/winners", MetricsMiddleware(s.winnersHandler.HandleWinners, "winners"))
	mux.HandleFunc("/team", MetricsMiddleware(s.teamHandler.HandleTeam, "team"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/account", MetricsMiddleware(s.accountHandler.HandleDeleteAccount, "account"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads and validates a request body.
func decodeJSON(r *http.Request, validate *validator.Validate, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

// userParam extracts the acting user id from the query string. Who the
// user actually is belongs to the excluded auth layer; the core only needs
// an identifier to namespace keys by.
func userParam(r *http.Request) string {
	return r.URL.Query().Get("user")
}
