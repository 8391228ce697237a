// Package app provides the core business service that implements the
// dependencies required by the HTTP API. It owns the shared store and
// clock and wires the team, profile, ledger, vote and winner components
// together.
package app

import (
	"context"
	"sync"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/domain/rank"
	"github.com/clawsandpaws/pawsd/internal/events"
	"github.com/clawsandpaws/pawsd/internal/images"
	"github.com/clawsandpaws/pawsd/internal/mirror"
	"github.com/clawsandpaws/pawsd/internal/posts"
	"github.com/clawsandpaws/pawsd/internal/profile"
	"github.com/clawsandpaws/pawsd/internal/team"
	"github.com/clawsandpaws/pawsd/internal/votes"
	"github.com/clawsandpaws/pawsd/internal/winners"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/clawsandpaws/pawsd/pkg/metrics"
)

// Service implements the application operations behind the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     kv.Store
	teams     *team.Preference
	profiles  *profile.Record
	ledger    *posts.Ledger
	guard     *votes.Guard
	archiver  *winners.Archiver
	publisher *events.Publisher

	// Configuration
	storageDriver string
	storagePath   string
	period        winners.Period
	mirrorBaseURL string
	catImageURL   string
	dogImageURL   string
	catAPIKey     string
	natsURL       string
	clk           clock.Clock

	// State
	started bool

	// Logging
	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStorage selects the key-value backend and, for sqlite, its path.
func WithStorage(driver, path string) Option {
	return func(s *Service) {
		if driver != "" {
			s.storageDriver = driver
		}
		if path != "" {
			s.storagePath = path
		}
	}
}

// WithStore injects a prebuilt store, overriding WithStorage. Tests use
// this to run against a memory store.
func WithStore(store kv.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithWinnerPeriod sets the archive window length.
func WithWinnerPeriod(p winners.Period) Option {
	return func(s *Service) {
		s.period = p
	}
}

// WithMirrorBaseURL enables the remote post mirror.
func WithMirrorBaseURL(url string) Option {
	return func(s *Service) {
		s.mirrorBaseURL = url
	}
}

// WithImageEndpoints overrides the stock image API endpoints.
func WithImageEndpoints(catURL, dogURL, catAPIKey string) Option {
	return func(s *Service) {
		s.catImageURL = catURL
		s.dogImageURL = dogURL
		s.catAPIKey = catAPIKey
	}
}

// WithNATSURL enables event publishing.
func WithNATSURL(url string) Option {
	return func(s *Service) {
		s.natsURL = url
	}
}

// WithClock sets the shared time source for votes and winner closing.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clk = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storageDriver: "memory",
		period:        winners.PeriodDaily,
		clk:           clock.System(nil),
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.log.Info(ctx, "starting claws-and-paws service...")

	if s.store == nil {
		switch s.storageDriver {
		case "sqlite":
			store, err := kv.OpenSQLite(ctx, s.storagePath)
			if err != nil {
				return err
			}
			s.store = store
			s.log.Info(ctx, "using sqlite store", logger.String("path", s.storagePath))
		default:
			s.store = kv.NewMemoryStore()
			s.log.Info(ctx, "using memory store")
		}
	}

	if s.natsURL != "" {
		pub, err := events.Connect(s.natsURL, s.log.Named("events"))
		if err != nil {
			// Event publishing is best-effort; the service runs without it.
			metrics.RecordCollaboratorFailure("broker")
			s.log.Warn(ctx, "nats connect failed, events disabled", logger.Error(err))
		} else {
			s.publisher = pub
		}
	}

	provider := images.NewHTTPProvider(
		images.WithEndpoints(s.catImageURL, s.dogImageURL),
		images.WithCatAPIKey(s.catAPIKey),
	)

	ledgerOpts := []posts.Option{
		posts.WithClock(s.clk),
		posts.WithImageProvider(provider),
		posts.WithLogger(s.log.Named("posts")),
	}
	if s.mirrorBaseURL != "" {
		ledgerOpts = append(ledgerOpts, posts.WithMirror(mirror.New(s.mirrorBaseURL)))
		s.log.Info(ctx, "mirroring posts", logger.String("base_url", s.mirrorBaseURL))
	}

	s.teams = team.New(s.store)
	s.profiles = profile.New(s.store)
	s.ledger = posts.New(s.store, ledgerOpts...)
	s.guard = votes.New(s.store,
		votes.WithClock(s.clk),
		votes.WithLogger(s.log.Named("votes")),
	)
	s.archiver = winners.New(s.store,
		winners.WithClock(s.clk),
		winners.WithPeriod(s.period),
		winners.WithLogger(s.log.Named("winners")),
		winners.WithPublisher(s.publisher),
	)

	s.started = true
	s.log.Info(ctx, "service started",
		logger.String("storage", s.storageDriver),
		logger.String("period", string(s.period)),
	)
	return nil
}

// Stop releases the service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.log.Info(context.Background(), "stopping claws-and-paws service...")

	s.publisher.Close()
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.log.Info(context.Background(), "service stopped")
}

// Posts returns the posts for team in insertion order. An empty team means
// all posts.
func (s *Service) Posts(ctx context.Context, t model.Team) ([]model.Post, error) {
	all, err := s.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	return rank.FilterByTeam(all, t), nil
}

// TopPosts returns up to limit posts for team ranked by likes then recency.
func (s *Service) TopPosts(ctx context.Context, t model.Team, limit int) ([]model.Post, error) {
	filtered, err := s.Posts(ctx, t)
	if err != nil {
		return nil, err
	}
	ranked := rank.ByLikesThenRecency(filtered)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// CreatePost adds a post to the ledger and publishes its creation.
func (s *Service) CreatePost(ctx context.Context, in posts.AddInput) (model.Post, error) {
	post, err := s.ledger.Add(ctx, in)
	if err != nil {
		return model.Post{}, err
	}
	s.publisher.PostCreated(ctx, post)
	return post, nil
}

// LikePost increments a post's like count.
func (s *Service) LikePost(ctx context.Context, id string) error {
	return s.ledger.Like(ctx, id)
}

// VoteStatus reports whether userID may still vote today.
func (s *Service) VoteStatus(ctx context.Context, userID string) (votes.Status, error) {
	return s.guard.Status(ctx, userID)
}

// CastVote runs the voting sequence: reject if the user already voted
// today, apply the like, record the vote, then give the archiver a chance
// to close the previous period.
func (s *Service) CastVote(ctx context.Context, userID, postID string) error {
	status, err := s.guard.Status(ctx, userID)
	if err != nil {
		return err
	}
	if status.HasVotedToday {
		metrics.RecordVoteRejected()
		return ErrAlreadyVoted
	}
	if err := s.ledger.Like(ctx, postID); err != nil {
		return err
	}
	if err := s.guard.Record(ctx, userID, postID); err != nil {
		return err
	}
	s.publisher.VoteRecorded(ctx, userID, postID, clock.DayKey(s.clk.Now()))

	all, err := s.ledger.Load(ctx)
	if err != nil {
		return err
	}
	return s.archiver.CloseIfNeeded(ctx, all)
}

// CloseIfNeeded lets callers run the archiver outside of a vote, e.g. on
// app foreground.
func (s *Service) CloseIfNeeded(ctx context.Context) error {
	all, err := s.ledger.Load(ctx)
	if err != nil {
		return err
	}
	return s.archiver.CloseIfNeeded(ctx, all)
}

// Winners returns the archive, most recent first.
func (s *Service) Winners(ctx context.Context) ([]model.Winner, error) {
	return s.archiver.All(ctx)
}

// ClearWinners wipes the archive.
func (s *Service) ClearWinners(ctx context.Context) error {
	return s.archiver.Clear(ctx)
}

// ClearVote removes userID's vote record.
func (s *Service) ClearVote(ctx context.Context, userID string) error {
	return s.guard.Clear(ctx, userID)
}

// Team returns the stored team preference.
func (s *Service) Team(ctx context.Context) (model.Team, bool, error) {
	return s.teams.Get(ctx)
}

// SetTeam stores the team preference.
func (s *Service) SetTeam(ctx context.Context, t model.Team) error {
	return s.teams.Set(ctx, t)
}

// Profile returns the profile for userID, with defaults for absent fields.
func (s *Service) Profile(ctx context.Context, userID string) (model.Profile, error) {
	return s.profiles.Get(ctx, userID)
}

// SaveProfile stores the profile for userID.
func (s *Service) SaveProfile(ctx context.Context, userID string, p model.Profile) error {
	return s.profiles.Set(ctx, userID, p)
}

// ClearProfile removes the profile for userID.
func (s *Service) ClearProfile(ctx context.Context, userID string) error {
	return s.profiles.Clear(ctx, userID)
}

// DeleteAccount removes everything tied to userID, including the post
// ledger (the bulk clear-all is the only way posts are ever deleted).
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.ledger.ClearAll(ctx); err != nil {
		return err
	}
	if err := s.teams.Clear(ctx); err != nil {
		return err
	}
	if err := s.profiles.Clear(ctx, userID); err != nil {
		return err
	}
	return s.guard.Clear(ctx, userID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"storage": s.storageDriver,
		"period":  string(s.period),
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	if posts, err := s.ledger.Load(ctx); err == nil {
		stats["posts"] = len(posts)
		metrics.UpdatePostsTotal(len(posts))
	}
	if winners, err := s.archiver.All(ctx); err == nil {
		stats["winners"] = len(winners)
		metrics.UpdateWinnersTotal(len(winners))
	}
	return stats
}
