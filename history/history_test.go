package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sylc-player/sylc/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a media file", t, func() {
		path := "/media/movies/film.mkv"

		Convey("When saving its playback position", func() {
			err := Save(path, 120, 5400)

			Convey("Then the record should be retrievable", func() {
				So(err, ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[path], ShouldNotBeNil)
				So(saved[path].Title, ShouldEqual, "film")
				So(saved[path].PositionSeconds, ShouldEqual, 120)

				record := For(path)
				So(record.IsPresent(), ShouldBeTrue)
			})

			Convey("Then a later save should move the resume position", func() {
				So(Save(path, 4000, 5400), ShouldBeNil)

				record := For(path).MustGet()
				So(record.PositionSeconds, ShouldEqual, 4000)
			})

			Convey("Then a partial re-watch should not regress the watched percentage", func() {
				So(Save(path, 5000, 5400), ShouldBeNil)
				before := For(path).MustGet().WatchedPercentage

				So(Save(path, 60, 5400), ShouldBeNil)
				after := For(path).MustGet()
				So(after.PositionSeconds, ShouldEqual, 60)
				So(after.WatchedPercentage, ShouldEqual, before)
			})

			Convey("Then removing it should drop the record", func() {
				So(Remove(path), ShouldBeNil)
				So(For(path).IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
