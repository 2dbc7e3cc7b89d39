package stereo

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sylc-player/sylc/ffmpeg"
	"github.com/sylc-player/sylc/probe"
)

type noopRuntime struct{}

func (noopRuntime) Check(string) error { return nil }

func brokenAnalyzer() *Analyzer {
	gateway := probe.NewGatewayWith(func(string) (string, error) {
		return "", ffmpeg.ErrNotFound
	}, noopRuntime{})
	return NewAnalyzerWith(gateway)
}

func TestAnalyzeFallback(t *testing.T) {
	Convey("Analyze without a usable ffprobe", t, func() {
		analyzer := brokenAnalyzer()
		ctx := context.Background()

		Convey("Should classify side-by-side names", func() {
			for _, name := range []string{
				"/media/movie_3d_sbs.mkv",
				"/media/Movie.2019.HSBS.mkv",
				"/media/some_3d_movie.mkv",
			} {
				result := analyzer.Analyze(ctx, name)
				So(result.Is3D, ShouldBeTrue)
				So(result.StereoMode, ShouldEqual, ModeSBS)
				So(result.Degraded(), ShouldBeTrue)
			}
		})

		Convey("Should classify top-bottom names ahead of the looser 3d match", func() {
			for _, name := range []string{
				"/media/movie_3d_tab.mkv",
				"/media/Movie.3D.HTAB.mkv",
			} {
				result := analyzer.Analyze(ctx, name)
				So(result.Is3D, ShouldBeTrue)
				So(result.StereoMode, ShouldEqual, ModeTAB)
			}
		})

		Convey("Should leave unhinting names as 2D but keep the diagnostic", func() {
			result := analyzer.Analyze(ctx, "/media/plain_movie.mkv")
			So(result.Is3D, ShouldBeFalse)
			So(result.StereoMode, ShouldEqual, ModeNone)
			So(result.HasMVCTrack, ShouldBeFalse)
			So(result.AnalysisError, ShouldNotBeEmpty)
			So(result.Degraded(), ShouldBeTrue)
		})

		Convey("Should not trust a bare tab substring", func() {
			// "tab" alone is too common a substring to trust; only the
			// explicit 3d marker unlocks the top-bottom branch.
			result := analyzer.Analyze(ctx, "/media/tabletop.mkv")
			So(result.Is3D, ShouldBeFalse)
		})
	})
}
