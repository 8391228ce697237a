package rank_test

import (
	"testing"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func post(id string, team model.Team, likes int, createdAt time.Time) model.Post {
	return model.Post{ID: id, Team: team, Likes: likes, CreatedAt: createdAt}
}

func TestFilterByTeam(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := []model.Post{
		post("a", model.TeamCats, 1, base),
		post("b", model.TeamDogs, 2, base),
		post("c", model.TeamCats, 3, base),
	}

	Convey("Given a mixed feed", t, func() {
		Convey("When filtering by cats", func() {
			got := rank.FilterByTeam(posts, model.TeamCats)

			Convey("Then only cat posts remain, in order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].ID, ShouldEqual, "a")
				So(got[1].ID, ShouldEqual, "c")
			})
		})

		Convey("When filtering with an empty team", func() {
			got := rank.FilterByTeam(posts, "")

			Convey("Then every post is returned", func() {
				So(got, ShouldHaveLength, 3)
			})

			Convey("And mutating the result leaves the input alone", func() {
				got[0].Likes = 99
				So(posts[0].Likes, ShouldEqual, 1)
			})
		})
	})
}

func TestByLikesThenRecency(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given posts with distinct like counts", t, func() {
		posts := []model.Post{
			post("low", model.TeamCats, 1, base),
			post("high", model.TeamDogs, 9, base),
			post("mid", model.TeamCats, 5, base),
		}
		got := rank.ByLikesThenRecency(posts)

		Convey("Then they sort by likes descending", func() {
			So(got[0].ID, ShouldEqual, "high")
			So(got[1].ID, ShouldEqual, "mid")
			So(got[2].ID, ShouldEqual, "low")
		})

		Convey("And the input order is untouched", func() {
			So(posts[0].ID, ShouldEqual, "low")
		})
	})

	Convey("Given posts tied on likes", t, func() {
		posts := []model.Post{
			post("older", model.TeamCats, 5, base.Add(-time.Hour)),
			post("newer", model.TeamDogs, 5, base),
		}
		got := rank.ByLikesThenRecency(posts)

		Convey("Then the newer post wins the tie", func() {
			So(got[0].ID, ShouldEqual, "newer")
		})
	})

	Convey("Given posts tied on likes and time", t, func() {
		posts := []model.Post{
			post("first", model.TeamCats, 5, base),
			post("second", model.TeamDogs, 5, base),
		}
		got := rank.ByLikesThenRecency(posts)

		Convey("Then input order is preserved", func() {
			So(got[0].ID, ShouldEqual, "first")
			So(got[1].ID, ShouldEqual, "second")
		})
	})
}

func TestWithin(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	Convey("Given posts around a day window", t, func() {
		posts := []model.Post{
			post("before", model.TeamCats, 0, from.Add(-time.Second)),
			post("at-start", model.TeamCats, 0, from),
			post("inside", model.TeamDogs, 0, from.Add(12*time.Hour)),
			post("at-end", model.TeamDogs, 0, to),
		}
		got := rank.Within(posts, from, to)

		Convey("Then the window is half-open: start in, end out", func() {
			So(got, ShouldHaveLength, 2)
			So(got[0].ID, ShouldEqual, "at-start")
			So(got[1].ID, ShouldEqual, "inside")
		})
	})
}
