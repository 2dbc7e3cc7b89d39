package stereo

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyToken(t *testing.T) {
	Convey("ClassifyToken", t, func() {
		Convey("Should normalize separators and case", func() {
			mode, ok := ClassifyToken("Side-By-Side")
			So(ok, ShouldBeTrue)
			So(mode, ShouldEqual, ModeSBS)

			mode, ok = ClassifyToken("TOP BOTTOM")
			So(ok, ShouldBeTrue)
			So(mode, ShouldEqual, ModeTAB)
		})

		Convey("Should reject mono tokens", func() {
			for _, token := range []string{"mono", "left", "right", "both", "2d", ""} {
				_, ok := ClassifyToken(token)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Should classify anaglyph keywords", func() {
			for _, token := range []string{"anaglyph_red_cyan", "cyan_red", "magenta"} {
				mode, ok := ClassifyToken(token)
				So(ok, ShouldBeTrue)
				So(mode, ShouldEqual, ModeAnaglyph)
			}
		})

		Convey("Should classify frame-packed keywords as mvc", func() {
			for _, token := range []string{"frame_packing", "block_lr", "FrameAlternate", "view packed", "mvc"} {
				mode, ok := ClassifyToken(token)
				So(ok, ShouldBeTrue)
				So(mode, ShouldEqual, ModeMVC)
			}
		})

		Convey("Should classify top-bottom keywords", func() {
			for _, token := range []string{"over_under", "block_tb", "bottom-top", "tb"} {
				mode, ok := ClassifyToken(token)
				So(ok, ShouldBeTrue)
				So(mode, ShouldEqual, ModeTAB)
			}
		})

		Convey("Should classify side-by-side keywords", func() {
			for _, token := range []string{"left_right", "row_interleaved", "hsbs half", "right-left"} {
				mode, ok := ClassifyToken(token)
				So(ok, ShouldBeTrue)
				So(mode, ShouldEqual, ModeSBS)
			}
		})

		Convey("Should leave unknown tokens unclassified", func() {
			_, ok := ClassifyToken("checkerboard??")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestPriority(t *testing.T) {
	Convey("Mode priorities", t, func() {
		So(ModeNone.Priority(), ShouldEqual, 0)
		So(ModeTAB.Priority(), ShouldEqual, 1)
		So(ModeAnaglyph.Priority(), ShouldEqual, 1)
		So(ModeSBS.Priority(), ShouldEqual, 2)
		So(ModeMVC.Priority(), ShouldEqual, 3)
	})
}
