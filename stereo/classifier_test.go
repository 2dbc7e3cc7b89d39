package stereo

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sylc-player/sylc/probe"
)

func videoStream(mutate func(*probe.Stream)) probe.Stream {
	s := probe.Stream{
		CodecType: "video",
		CodecName: "h264",
		Profile:   "High",
		Width:     1920,
		Height:    1080,
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func reportOf(streams ...probe.Stream) *probe.Report {
	return &probe.Report{Streams: streams}
}

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Plain 2D content stays 2D", func() {
			result := Classify(reportOf(videoStream(nil)))
			So(result.Is3D, ShouldBeFalse)
			So(result.StereoMode, ShouldEqual, ModeNone)
			So(result.HasMVCTrack, ShouldBeFalse)
			So(result.Width, ShouldEqual, 1920)
			So(result.Height, ShouldEqual, 1080)
		})

		Convey("Resolution override is absolute", func() {
			geometries := [][2]int{{1920, 2205}, {1920, 2160}, {3840, 4320}}
			for _, g := range geometries {
				stream := videoStream(func(s *probe.Stream) {
					s.Width, s.Height = g[0], g[1]
					// Contradicting signals must not matter.
					s.Tags = map[string]string{"STEREO_MODE": "side_by_side"}
					s.SideData = []probe.SideData{{Kind: "Stereo 3D", Layout: "top_bottom"}}
				})
				result := Classify(reportOf(stream))
				So(result.Is3D, ShouldBeTrue)
				So(result.StereoMode, ShouldEqual, ModeMVC)
				So(result.HasMVCTrack, ShouldBeTrue)
			}
		})

		Convey("Stereo profile promotes to mvc", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.Profile = "High 10 Stereo High"
			})
			result := Classify(reportOf(stream))
			So(result.Is3D, ShouldBeTrue)
			So(result.StereoMode, ShouldEqual, ModeMVC)
			So(result.HasMVCTrack, ShouldBeTrue)
		})

		Convey("Dependent disposition promotes to mvc regardless of profile", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.Dependent = true
			})
			result := Classify(reportOf(stream))
			So(result.StereoMode, ShouldEqual, ModeMVC)
			So(result.HasMVCTrack, ShouldBeTrue)
		})

		Convey("Side data stereo3d blocks classify from the first usable field", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.SideData = []probe.SideData{
					{Kind: "Stereo 3D", Type: "side by side"},
				}
			})
			result := Classify(reportOf(stream))
			So(result.Is3D, ShouldBeTrue)
			So(result.StereoMode, ShouldEqual, ModeSBS)

			// Old ffprobe builds duplicate the block name into the type
			// field; classification falls through to the layout.
			stream = videoStream(func(s *probe.Stream) {
				s.SideData = []probe.SideData{
					{Kind: "Stereo 3D", Type: "Stereo 3D", Layout: "top_bottom"},
				}
			})
			result = Classify(reportOf(stream))
			So(result.StereoMode, ShouldEqual, ModeTAB)

			// Unrelated side data never classifies.
			stream = videoStream(func(s *probe.Stream) {
				s.SideData = []probe.SideData{
					{Kind: "Display Matrix", Type: "side by side"},
				}
			})
			result = Classify(reportOf(stream))
			So(result.Is3D, ShouldBeFalse)
		})

		Convey("Tag signal classifies stereo-prefixed keys", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.Tags = map[string]string{"stereo_mode": "top_bottom"}
			})
			result := Classify(reportOf(stream))
			So(result.Is3D, ShouldBeTrue)
			So(result.StereoMode, ShouldEqual, ModeTAB)
		})

		Convey("Conflicting equal-priority tags resolve the same way every pass", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.Tags = map[string]string{
					"stereo_mode":   "top_bottom",
					"stereo_layout": "anaglyph",
				}
			})

			// Sorted key order puts stereo_layout before stereo_mode, so the
			// tie goes to top_bottom on every pass.
			for i := 0; i < 50; i++ {
				result := Classify(reportOf(stream))
				So(result.Is3D, ShouldBeTrue)
				So(result.StereoMode, ShouldEqual, ModeTAB)
			}
		})

		Convey("Higher priority beats lower; ties favor the later signal", func() {
			// Tag (tab, priority 1) then side data (sbs, priority 2).
			stream := videoStream(func(s *probe.Stream) {
				s.Tags = map[string]string{"STEREO_MODE": "top_bottom"}
				s.SideData = []probe.SideData{{Kind: "Stereo 3D", Layout: "side_by_side"}}
			})
			result := Classify(reportOf(stream))
			So(result.StereoMode, ShouldEqual, ModeSBS)

			// Equal priority: a later tab signal overrides an earlier anaglyph.
			tie := Result{StereoMode: ModeNone}
			promote(&tie, ModeAnaglyph, false)
			promote(&tie, ModeTAB, false)
			So(tie.StereoMode, ShouldEqual, ModeTAB)

			// A lower-priority signal never demotes.
			promote(&tie, ModeSBS, false)
			promote(&tie, ModeAnaglyph, false)
			So(tie.StereoMode, ShouldEqual, ModeSBS)
			So(tie.Is3D, ShouldBeTrue)
		})

		Convey("Separate mvc stream forces mvc", func() {
			report := reportOf(
				videoStream(nil),
				probe.Stream{CodecType: "video", CodecName: "mvc"},
			)
			result := Classify(report)
			So(result.Is3D, ShouldBeTrue)
			So(result.HasMVCTrack, ShouldBeTrue)
			So(result.StereoMode, ShouldEqual, ModeMVC)
		})

		Convey("Audio streams never contribute geometry", func() {
			report := reportOf(videoStream(nil))
			report.Streams = append(report.Streams, probe.Stream{CodecType: "audio", CodecName: "aac"})
			result := Classify(report)
			So(result.Width, ShouldEqual, 1920)
		})

		Convey("Identical reports produce identical results", func() {
			stream := videoStream(func(s *probe.Stream) {
				s.Tags = map[string]string{"STEREO_MODE": "left_right"}
			})
			first := Classify(reportOf(stream))
			second := Classify(reportOf(stream))
			So(second, ShouldResemble, first)
		})
	})
}
