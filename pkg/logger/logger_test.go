package logger_test

import (
	"context"
	"testing"

	"github.com/clawsandpaws/pawsd/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When getting the global logger", func() {
			l := logger.Get()

			Convey("Then it should not be nil", func() {
				So(l, ShouldNotBeNil)
			})

			Convey("And logging should not panic", func() {
				So(func() {
					l.Info(context.Background(), "hello", logger.String("k", "v"))
					l.Debug(context.Background(), "debug line", logger.Int("n", 1))
					l.Warn(context.Background(), "warn line", logger.Bool("b", true))
					l.Error(context.Background(), "error line", logger.Error(nil))
				}, ShouldNotPanic)
			})
		})

		Convey("When creating a named logger", func() {
			named := logger.Named("votes")

			Convey("Then it should not be nil", func() {
				So(named, ShouldNotBeNil)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known levels should be accepted", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("INFO"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("And unknown levels should be rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})

		Convey("When syncing", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then they should carry key and value", func() {
			So(logger.String("a", "b").Key, ShouldEqual, "a")
			So(logger.String("a", "b").Value, ShouldEqual, "b")
			So(logger.Int("n", 7).Value, ShouldEqual, 7)
			So(logger.Bool("ok", true).Value, ShouldEqual, true)
			So(logger.Any("x", 1.5).Value, ShouldEqual, 1.5)
			So(logger.Error(nil).Key, ShouldEqual, "error")
		})
	})
}
