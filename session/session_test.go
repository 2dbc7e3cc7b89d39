package session

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/ffmpeg"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/history"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/probe"
	"github.com/sylc-player/sylc/stereo"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.PlayerStereoAuto, true)
	viper.Set(key.PlayerCompletionPercentage, 85.0)
	viper.Set(key.HistorySaveOnPlay, false)
}

type fakePlayer struct {
	played  []string
	applied []stereo.Mode
	seeked  []float64
	exited  chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{exited: make(chan struct{})}
}

func (f *fakePlayer) Play(path string, _ string) error {
	f.played = append(f.played, path)
	return nil
}

func (f *fakePlayer) TogglePause() error { return nil }
func (f *fakePlayer) GetTimePos() (float64, error) { return 0, nil }
func (f *fakePlayer) GetDuration() (float64, error) { return 0, nil }
func (f *fakePlayer) GetPercentWatched() (float64, error) { return 0, nil }
func (f *fakePlayer) GetPausedStatus() (bool, error) { return false, nil }
func (f *fakePlayer) HasActivePlayback() (bool, error) { return true, nil }
func (f *fakePlayer) IsRunning() bool { return true }
func (f *fakePlayer) StartIPCTicker(func(int, int)) {}
func (f *fakePlayer) StopIPCTicker() {}
func (f *fakePlayer) Wait() <-chan struct{} { return f.exited }
func (f *fakePlayer) Close() error { return nil }

func (f *fakePlayer) Seek(seconds float64) error {
	f.seeked = append(f.seeked, seconds)
	return nil
}

func (f *fakePlayer) ApplyStereo(mode stereo.Mode) error {
	f.applied = append(f.applied, mode)
	return nil
}

// degradedAnalyzer classifies by filename only, as if ffprobe were absent.
func degradedAnalyzer() *stereo.Analyzer {
	gateway := probe.NewGatewayWith(func(string) (string, error) {
		return "", ffmpeg.ErrNotFound
	}, noopRuntime{})
	return stereo.NewAnalyzerWith(gateway)
}

type noopRuntime struct{}

func (noopRuntime) Check(string) error { return nil }

func TestSession(t *testing.T) {
	Convey("Session", t, func() {
		ctx := context.Background()

		Convey("Starting a 3D file configures the player and reports degradation", func() {
			p := newFakePlayer()
			var notices []string

			s := New(Options{
				Player:   p,
				Analyzer: degradedAnalyzer(),
				Notify:   func(message string) { notices = append(notices, message) },
			})

			So(s.Start(ctx, "/media/movie_3d_sbs.mkv"), ShouldBeNil)

			So(p.played, ShouldResemble, []string{"/media/movie_3d_sbs.mkv"})
			So(p.applied, ShouldResemble, []stereo.Mode{stereo.ModeSBS})
			So(s.Result().Degraded(), ShouldBeTrue)
			So(len(notices), ShouldBeGreaterThanOrEqualTo, 1)
			So(notices[0], ShouldContainSubstring, "degraded")
		})

		Convey("A 2D file never reconfigures the player", func() {
			p := newFakePlayer()

			s := New(Options{Player: p, Analyzer: degradedAnalyzer()})
			So(s.Start(ctx, "/media/plain.mkv"), ShouldBeNil)

			So(p.applied, ShouldBeEmpty)
		})

		Convey("Resume seeks to the saved position", func() {
			path := "/media/resume_me.mkv"
			So(history.Save(path, 600, 5400), ShouldBeNil)

			p := newFakePlayer()
			s := New(Options{Player: p, Analyzer: degradedAnalyzer(), Resume: true})
			So(s.Start(ctx, path), ShouldBeNil)

			So(p.seeked, ShouldResemble, []float64{600})
		})

		Convey("Resume skips files that were effectively finished", func() {
			path := "/media/finished.mkv"
			So(history.Save(path, 5200, 5400), ShouldBeNil)

			p := newFakePlayer()
			s := New(Options{Player: p, Analyzer: degradedAnalyzer(), Resume: true})
			So(s.Start(ctx, path), ShouldBeNil)

			So(p.seeked, ShouldBeEmpty)
		})

		Convey("Automatic stereo setup honors the config switch", func() {
			viper.Set(key.PlayerStereoAuto, false)
			defer viper.Set(key.PlayerStereoAuto, true)

			p := newFakePlayer()
			s := New(Options{Player: p, Analyzer: degradedAnalyzer()})
			So(s.Start(ctx, "/media/movie_3d_sbs.mkv"), ShouldBeNil)

			So(p.applied, ShouldBeEmpty)
		})
	})
}
