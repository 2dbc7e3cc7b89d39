//go:build !windows

package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sylc-player/sylc/stereo"
)

// ipcRecorder fakes the mpv side of the JSON-IPC socket and records every
// command it receives.
type ipcRecorder struct {
	listener net.Listener
	mu       sync.Mutex
	commands [][]interface{}
}

func startRecorder(socketPath string) (*ipcRecorder, error) {
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	r := &ipcRecorder{listener: listener}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(conn net.Conn) {
				defer conn.Close()

				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var cmd ipcCommand
					if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
						continue
					}

					r.mu.Lock()
					r.commands = append(r.commands, cmd.Command)
					r.mu.Unlock()

					_, _ = conn.Write([]byte(`{"data":null,"error":"success"}` + "\n"))
				}
			}(conn)
		}
	}()

	return r, nil
}

func (r *ipcRecorder) received() [][]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]interface{}(nil), r.commands...)
}

func (r *ipcRecorder) close() {
	_ = r.listener.Close()
}

func recordedMPV(t *testing.T) (*MPV, *ipcRecorder) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "mpv.sock")
	recorder, err := startRecorder(socketPath)
	if err != nil {
		t.Fatalf("start ipc recorder: %v", err)
	}
	t.Cleanup(recorder.close)

	return &MPV{socketPath: socketPath, exited: make(chan struct{})}, recorder
}

func TestSanitizers(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should clean ordinary paths", func() {
			got, err := sanitizeMediaTarget("  /media//movies/film.mkv ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, string(os.PathSeparator)+filepath.Join("media", "movies", "film.mkv"))
		})

		Convey("Should reject empty and flag-like inputs", func() {
			_, err := sanitizeMediaTarget("")
			So(err, ShouldNotBeNil)

			_, err = sanitizeMediaTarget("--vo=null")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("movie\n.mkv")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("sanitizeTitle", t, func() {
		So(sanitizeTitle("A\tMovie\n(2020)\x00"), ShouldEqual, "A Movie (2020)")
	})
}

func TestApplyStereo(t *testing.T) {
	Convey("ApplyStereo", t, func() {
		mpv, recorder := recordedMPV(t)

		Convey("Frame-packed mode disables hwdec, scales and pins the display rate", func() {
			So(mpv.ApplyStereo(stereo.ModeMVC), ShouldBeNil)

			commands := recorder.received()
			So(commands, ShouldHaveLength, 3)
			So(commands[0], ShouldResemble, []interface{}{"set_property", "hwdec", "no"})
			So(commands[1], ShouldResemble, []interface{}{"set_property", "vf", "scale=1920:2205"})
			So(commands[2][1], ShouldEqual, "override-display-fps")
		})

		Convey("Side-by-side applies the stereo3d graph", func() {
			So(mpv.ApplyStereo(stereo.ModeSBS), ShouldBeNil)

			commands := recorder.received()
			So(commands, ShouldHaveLength, 1)
			So(commands[0], ShouldResemble, []interface{}{"set_property", "lavfi-complex", sbsFilter})
		})

		Convey("Top-bottom applies the stereo3d graph", func() {
			So(mpv.ApplyStereo(stereo.ModeTAB), ShouldBeNil)

			commands := recorder.received()
			So(commands[0], ShouldResemble, []interface{}{"set_property", "lavfi-complex", tabFilter})
		})

		Convey("Plain content clears the graph", func() {
			So(mpv.ApplyStereo(stereo.ModeNone), ShouldBeNil)

			commands := recorder.received()
			So(commands[0], ShouldResemble, []interface{}{"set_property", "lavfi-complex", ""})
		})
	})
}

func TestIPCTicker(t *testing.T) {
	Convey("IPC ticker", t, func() {
		mpv, _ := recordedMPV(t)

		tickerCleared := func() bool {
			for i := 0; i < 100; i++ {
				mpv.mu.Lock()
				cleared := mpv.tickerStop == nil
				mpv.mu.Unlock()
				if cleared {
					return true
				}
				time.Sleep(10 * time.Millisecond)
			}
			return false
		}

		Convey("Start is idempotent and Stop is safe to repeat", func() {
			mpv.StartIPCTicker(func(int, int) {})
			mpv.StartIPCTicker(func(int, int) {})
			mpv.StopIPCTicker()
			mpv.StopIPCTicker()
			So(tickerCleared(), ShouldBeTrue)
		})

		Convey("Player exit releases the ticker slot for a restart", func() {
			mpv.StartIPCTicker(func(int, int) {})
			close(mpv.exited)

			So(tickerCleared(), ShouldBeTrue)

			mpv.exited = make(chan struct{})
			mpv.StartIPCTicker(func(int, int) {})
			mpv.StopIPCTicker()
		})
	})
}

func TestIPCCommands(t *testing.T) {
	Convey("IPC commands", t, func() {
		mpv, recorder := recordedMPV(t)

		Convey("Seek sends an absolute seek", func() {
			So(mpv.Seek(42.5), ShouldBeNil)
			So(recorder.received()[0], ShouldResemble, []interface{}{"seek", 42.5, "absolute"})
		})

		Convey("TogglePause cycles the pause property", func() {
			So(mpv.TogglePause(), ShouldBeNil)
			So(recorder.received()[0], ShouldResemble, []interface{}{"cycle", "pause"})
		})
	})
}
