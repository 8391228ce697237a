// Package votes enforces at-most-one-vote-per-user-per-day. The per-user
// state machine is {no vote today, voted today}: Record moves it forward,
// and the calendar rolling over moves it back by computation alone — a
// stored vote whose date is not today reads as "no vote" without being
// deleted.
package votes

import (
	"context"
	"encoding/json"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/clawsandpaws/pawsd/pkg/metrics"
)

const keyPrefix = "dailyVote:"

// Status is the derived per-user vote state for today.
type Status struct {
	HasVotedToday bool    `json:"hasVotedToday"`
	PostID        *string `json:"postId"`
}

// Guard reads and writes the per-user daily vote records. Both the write
// and the comparison use the same injected clock, so "today" means the same
// thing on both sides of a midnight boundary.
type Guard struct {
	store kv.Store
	clk   clock.Clock
	log   logger.Logger
}

// Option applies a configuration option to the Guard.
type Option func(*Guard)

// WithClock sets the shared time source.
func WithClock(c clock.Clock) Option {
	return func(g *Guard) {
		if c != nil {
			g.clk = c
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Guard over store.
func New(store kv.Store, opts ...Option) *Guard {
	g := &Guard{
		store: store,
		clk:   clock.System(nil),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func voteKey(userID string) string {
	return keyPrefix + userID
}

// Status derives the vote state for userID from the stored record and the
// current calendar day. An unknown user or an unreadable record reads as
// "no vote today", never as an error.
func (g *Guard) Status(ctx context.Context, userID string) (Status, error) {
	raw, ok, err := g.store.Get(ctx, voteKey(userID))
	if err != nil {
		return Status{}, err
	}
	if !ok {
		return Status{}, nil
	}
	var record model.DailyVote
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		g.log.Warn(ctx, "stored vote unreadable, treating as no vote", logger.String("user", userID), logger.Error(err))
		return Status{}, nil
	}
	if record.Date != clock.DayKey(g.clk.Now()) {
		return Status{}, nil
	}
	return Status{HasVotedToday: true, PostID: &record.PostID}, nil
}

// Record unconditionally overwrites today's vote record for userID. It does
// not consult Status itself: callers check then act, which leaves a small
// double-tap window where two votes can land on the same day. The last
// write wins; the window is accepted and documented rather than locked.
func (g *Guard) Record(ctx context.Context, userID, postID string) error {
	record := model.DailyVote{
		Date:   clock.DayKey(g.clk.Now()),
		PostID: postID,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := g.store.Set(ctx, voteKey(userID), string(data)); err != nil {
		return err
	}
	metrics.RecordVoteRecorded()
	return nil
}

// Clear removes the vote record for userID. Admin and account-deletion use.
func (g *Guard) Clear(ctx context.Context, userID string) error {
	return g.store.Remove(ctx, voteKey(userID))
}
