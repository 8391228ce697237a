package team_test

import (
	"context"
	"testing"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/team"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPreference(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		ctx := context.Background()
		store := kv.NewMemoryStore()
		pref := team.New(store)

		Convey("When no team was ever chosen", func() {
			got, ok, err := pref.Get(ctx)

			Convey("Then the preference reads as unset", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(got, ShouldEqual, model.Team(""))
			})
		})

		Convey("When a team is set", func() {
			So(pref.Set(ctx, model.TeamDogs), ShouldBeNil)
			got, ok, err := pref.Get(ctx)

			Convey("Then it reads back", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, model.TeamDogs)
			})

			Convey("And switching sides overwrites it", func() {
				So(pref.Set(ctx, model.TeamCats), ShouldBeNil)
				got, ok, _ := pref.Get(ctx)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, model.TeamCats)
			})

			Convey("And clearing returns it to unset", func() {
				So(pref.Clear(ctx), ShouldBeNil)
				_, ok, err := pref.Get(ctx)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the stored value is garbage", func() {
			So(store.Set(ctx, "userTeam", "birds"), ShouldBeNil)
			got, ok, err := pref.Get(ctx)

			Convey("Then it reads as unset, not as an error", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(got, ShouldEqual, model.Team(""))
			})
		})
	})
}
