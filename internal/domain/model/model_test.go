package model_test

import (
	"testing"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseTeam(t *testing.T) {
	Convey("Given team strings from storage and wire formats", t, func() {
		Convey("Then canonical values parse", func() {
			got, ok := model.ParseTeam("cats")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, model.TeamCats)

			got, ok = model.ParseTeam("dogs")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, model.TeamDogs)
		})

		Convey("Then singular and case variants normalize", func() {
			for _, raw := range []string{"cat", "Cat", "CATS", " cats "} {
				got, ok := model.ParseTeam(raw)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, model.TeamCats)
			}
			got, ok := model.ParseTeam("DOG")
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, model.TeamDogs)
		})

		Convey("Then anything else reads as unset", func() {
			for _, raw := range []string{"", "birds", "catdog", "42"} {
				_, ok := model.ParseTeam(raw)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestTeamValid(t *testing.T) {
	Convey("Given team values", t, func() {
		So(model.TeamCats.Valid(), ShouldBeTrue)
		So(model.TeamDogs.Valid(), ShouldBeTrue)
		So(model.Team("").Valid(), ShouldBeFalse)
		So(model.Team("birds").Valid(), ShouldBeFalse)
	})
}
