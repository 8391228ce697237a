// Package winners derives the champion of each closed period and keeps the
// append-only winners log. Closing is idempotent: a period that already has
// an entry is never closed twice, so the archiver is safe to run on every
// refresh.
package winners

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/domain/rank"
	"github.com/clawsandpaws/pawsd/pkg/logger"
	"github.com/clawsandpaws/pawsd/pkg/metrics"
)

const storageKey = "weeklyWinners"

// Period selects the archive window length.
type Period string

// Supported periods. Weeks start on Sunday.
const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// ParsePeriod normalizes a configured period string.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly:
		return Period(s), true
	default:
		return "", false
	}
}

// Publisher receives archived winners. Satisfied by the events publisher.
type Publisher interface {
	WinnerArchived(ctx context.Context, w model.Winner)
}

// Archiver owns the winners log.
type Archiver struct {
	store   kv.Store
	clk     clock.Clock
	period  Period
	log     logger.Logger
	publish Publisher
}

// Option applies a configuration option to the Archiver.
type Option func(*Archiver)

// WithClock sets the shared time source.
func WithClock(c clock.Clock) Option {
	return func(a *Archiver) {
		if c != nil {
			a.clk = c
		}
	}
}

// WithPeriod sets the archive window length.
func WithPeriod(p Period) Option {
	return func(a *Archiver) {
		if p == PeriodDaily || p == PeriodWeekly {
			a.period = p
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(a *Archiver) {
		if log != nil {
			a.log = log
		}
	}
}

// WithPublisher sets the event sink for archived winners.
func WithPublisher(p Publisher) Option {
	return func(a *Archiver) {
		a.publish = p
	}
}

// New creates an Archiver over store. The default period is daily.
func New(store kv.Store, opts ...Option) *Archiver {
	a := &Archiver{
		store:  store,
		clk:    clock.System(nil),
		period: PeriodDaily,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Window returns the most recently completed period as a half-open
// [start, end) interval in now's location.
func (a *Archiver) Window(now time.Time) (time.Time, time.Time) {
	if a.period == PeriodWeekly {
		end := clock.StartOfWeek(now)
		return end.AddDate(0, 0, -7), end
	}
	end := clock.StartOfDay(now)
	return end.AddDate(0, 0, -1), end
}

// CloseIfNeeded archives the champion of the most recently completed period
// unless that period already has an entry or held no posts. The champion is
// the first post of the period window ranked by likes then recency. One
// read and at most one write; nothing blocks beyond that.
func (a *Archiver) CloseIfNeeded(ctx context.Context, posts []model.Post) error {
	winners, err := a.All(ctx)
	if err != nil {
		return err
	}
	start, end := a.Window(a.clk.Now())
	for _, w := range winners {
		if w.PeriodStart.Equal(start) {
			return nil
		}
	}

	window := rank.Within(posts, start, end)
	if len(window) == 0 {
		return nil
	}
	champ := rank.ByLikesThenRecency(window)[0]

	entry := model.Winner{
		PeriodStart:  start,
		PeriodEnd:    end,
		PostID:       champ.ID,
		Team:         champ.Team,
		Title:        champ.Title,
		Author:       champ.Author,
		LikesAtClose: champ.Likes,
		ImageURL:     champ.ImageURL,
	}

	next := make([]model.Winner, 0, len(winners)+1)
	next = append(next, entry)
	next = append(next, winners...)
	if err := a.save(ctx, next); err != nil {
		return err
	}
	metrics.RecordWinnerArchived()
	metrics.UpdateWinnersTotal(len(next))
	a.log.Info(ctx, "period closed",
		logger.String("post", champ.ID),
		logger.String("team", string(champ.Team)),
		logger.Int("likes", champ.Likes),
	)
	if a.publish != nil {
		a.publish.WinnerArchived(ctx, entry)
	}
	return nil
}

// All returns the archive, most recent first. An absent or unreadable log
// reads as empty.
func (a *Archiver) All(ctx context.Context) ([]model.Winner, error) {
	raw, ok, err := a.store.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Winner{}, nil
	}
	var winners []model.Winner
	if err := json.Unmarshal([]byte(raw), &winners); err != nil {
		a.log.Warn(ctx, "stored winners unreadable, treating as empty", logger.Error(err))
		return []model.Winner{}, nil
	}
	return winners, nil
}

// Clear wipes the archive. Admin-only upstream.
func (a *Archiver) Clear(ctx context.Context) error {
	if err := a.store.Remove(ctx, storageKey); err != nil {
		return err
	}
	metrics.UpdateWinnersTotal(0)
	return nil
}

func (a *Archiver) save(ctx context.Context, winners []model.Winner) error {
	data, err := json.Marshal(winners)
	if err != nil {
		return fmt.Errorf("marshal winners: %w", err)
	}
	return a.store.Set(ctx, storageKey, string(data))
}
