package format_test

import (
	"testing"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/format"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLikesLabel(t *testing.T) {
	Convey("Given like counts", t, func() {
		Convey("Then one like is singular", func() {
			So(format.LikesLabel(1), ShouldEqual, "1 like")
		})

		Convey("Then zero and many are plural", func() {
			So(format.LikesLabel(0), ShouldEqual, "0 likes")
			So(format.LikesLabel(42), ShouldEqual, "42 likes")
		})

		Convey("Then negative counts clamp to zero", func() {
			So(format.LikesLabel(-3), ShouldEqual, "0 likes")
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Given text to truncate", t, func() {
		Convey("Then short text passes through", func() {
			So(format.Truncate("hello", 10), ShouldEqual, "hello")
			So(format.Truncate("hello", 5), ShouldEqual, "hello")
		})

		Convey("Then long text is cut with an ellipsis", func() {
			So(format.Truncate("hello world", 6), ShouldEqual, "hello…")
		})

		Convey("Then multi-byte text is cut on rune boundaries", func() {
			So(format.Truncate("ねこはかわいい", 4), ShouldEqual, "ねこは…")
		})

		Convey("Then degenerate limits behave", func() {
			So(format.Truncate("abc", 0), ShouldEqual, "")
			So(format.Truncate("abc", 1), ShouldEqual, "…")
		})
	})
}

func TestMDY(t *testing.T) {
	Convey("Given timestamps", t, func() {
		Convey("Then dates render without zero padding", func() {
			d := time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)
			So(format.MDY(d), ShouldEqual, "3/7/2026")
		})

		Convey("Then non-UTC times render in UTC", func() {
			loc := time.FixedZone("plus5", 5*60*60)
			d := time.Date(2026, 3, 8, 2, 0, 0, 0, loc)
			So(format.MDY(d), ShouldEqual, "3/7/2026")
		})
	})
}
