package winners_test

import (
	"context"
	"testing"
	"time"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/clock"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/winners"
	. "github.com/smartystreets/goconvey/convey"
)

// capturePublisher records archived winners.
type capturePublisher struct {
	archived []model.Winner
}

func (c *capturePublisher) WinnerArchived(ctx context.Context, w model.Winner) {
	c.archived = append(c.archived, w)
}

func fixedClock(t time.Time) clock.Clock {
	return clock.Func(func() time.Time { return t })
}

func TestWindow(t *testing.T) {
	Convey("Given an archiver clock", t, func() {
		now := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC) // Saturday
		store := kv.NewMemoryStore()

		Convey("When the period is daily", func() {
			a := winners.New(store, winners.WithClock(fixedClock(now)))
			start, end := a.Window(now)

			Convey("Then the window is yesterday", func() {
				So(start, ShouldEqual, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC))
				So(end, ShouldEqual, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When the period is weekly", func() {
			a := winners.New(store, winners.WithClock(fixedClock(now)), winners.WithPeriod(winners.PeriodWeekly))
			start, end := a.Window(now)

			Convey("Then the window is the previous Sunday-to-Sunday week", func() {
				So(start, ShouldEqual, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC))
				So(end, ShouldEqual, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
			})
		})
	})
}

func TestParsePeriod(t *testing.T) {
	Convey("Given period strings", t, func() {
		p, ok := winners.ParsePeriod("daily")
		So(ok, ShouldBeTrue)
		So(p, ShouldEqual, winners.PeriodDaily)

		p, ok = winners.ParsePeriod("weekly")
		So(ok, ShouldBeTrue)
		So(p, ShouldEqual, winners.PeriodWeekly)

		_, ok = winners.ParsePeriod("monthly")
		So(ok, ShouldBeFalse)
	})
}

func TestCloseIfNeeded(t *testing.T) {
	now := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)

	Convey("Given posts from the previous day", t, func() {
		ctx := context.Background()
		store := kv.NewMemoryStore()
		pub := &capturePublisher{}
		a := winners.New(store,
			winners.WithClock(fixedClock(now)),
			winners.WithPublisher(pub),
		)
		posts := []model.Post{
			{ID: "a", Team: model.TeamCats, Title: "Runner-up", Author: "mira", Likes: 10, CreatedAt: yesterday},
			{ID: "b", Team: model.TeamDogs, Title: "Champion", Author: "chase", Likes: 30, CreatedAt: yesterday.Add(time.Hour)},
			{ID: "c", Team: model.TeamCats, Title: "Too new", Author: "mira", Likes: 99, CreatedAt: now},
		}

		Convey("When closing the period", func() {
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)
			got, err := a.All(ctx)

			Convey("Then the most-liked post inside the window wins", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].PostID, ShouldEqual, "b")
				So(got[0].Team, ShouldEqual, model.TeamDogs)
				So(got[0].LikesAtClose, ShouldEqual, 30)
				So(got[0].PeriodStart, ShouldEqual, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC))
			})

			Convey("And the winner is published", func() {
				So(pub.archived, ShouldHaveLength, 1)
				So(pub.archived[0].PostID, ShouldEqual, "b")
			})

			Convey("And closing again is a no-op", func() {
				So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)
				again, _ := a.All(ctx)
				So(again, ShouldHaveLength, 1)
				So(pub.archived, ShouldHaveLength, 1)
			})
		})

		Convey("When likes change after the close", func() {
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)
			posts[0].Likes = 500
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)

			Convey("Then the archived entry keeps the likes at close", func() {
				got, _ := a.All(ctx)
				So(got, ShouldHaveLength, 1)
				So(got[0].LikesAtClose, ShouldEqual, 30)
			})
		})
	})

	Convey("Given no posts inside the window", t, func() {
		ctx := context.Background()
		store := kv.NewMemoryStore()
		a := winners.New(store, winners.WithClock(fixedClock(now)))
		posts := []model.Post{
			{ID: "new", Team: model.TeamCats, Likes: 5, CreatedAt: now},
		}

		Convey("When closing the period", func() {
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)

			Convey("Then nothing is archived", func() {
				got, err := a.All(ctx)
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})
	})

	Convey("Given days advancing across the boundary", t, func() {
		ctx := context.Background()
		store := kv.NewMemoryStore()
		current := now
		a := winners.New(store, winners.WithClock(clock.Func(func() time.Time { return current })))
		posts := []model.Post{
			{ID: "a", Team: model.TeamCats, Likes: 10, CreatedAt: yesterday},
			{ID: "b", Team: model.TeamDogs, Likes: 5, CreatedAt: now},
		}

		Convey("When closing today and again tomorrow", func() {
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)
			current = now.AddDate(0, 0, 1)
			So(a.CloseIfNeeded(ctx, posts), ShouldBeNil)

			Convey("Then each day gets its own entry, newest first", func() {
				got, _ := a.All(ctx)
				So(got, ShouldHaveLength, 2)
				So(got[0].PostID, ShouldEqual, "b")
				So(got[1].PostID, ShouldEqual, "a")
			})
		})
	})
}

func TestAllAndClear(t *testing.T) {
	Convey("Given a store with history", t, func() {
		ctx := context.Background()
		store := kv.NewMemoryStore()
		a := winners.New(store)

		Convey("When the log was never written", func() {
			got, err := a.All(ctx)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("When the stored log is unreadable", func() {
			So(store.Set(ctx, "weeklyWinners", "[broken"), ShouldBeNil)
			got, err := a.All(ctx)

			Convey("Then it reads as empty, not as an error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When clearing the archive", func() {
			So(store.Set(ctx, "weeklyWinners", `[]`), ShouldBeNil)
			So(a.Clear(ctx), ShouldBeNil)
			_, ok, _ := store.Get(ctx, "weeklyWinners")
			So(ok, ShouldBeFalse)
		})
	})
}
