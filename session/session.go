// Package session orchestrates a single playback session: stereo analysis,
// player startup, 3D configuration, preview scheduling and history tracking.
package session

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/history"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/log"
	"github.com/sylc-player/sylc/player"
	"github.com/sylc-player/sylc/preview"
	"github.com/sylc-player/sylc/stereo"
	"github.com/sylc-player/sylc/util"
)

// Options configure a session. Player and Analyzer are required; the rest
// may be nil to disable the corresponding feature.
type Options struct {
	Player   player.Player
	Analyzer *stereo.Analyzer

	// Scheduler receives the loaded file for timeline previews.
	Scheduler *preview.Scheduler

	// Notify is called with user-facing messages such as degraded-analysis
	// notices.
	Notify func(message string)

	// Resume seeks to the saved playback position when one exists.
	Resume bool
}

// Session is one playback of one file.
type Session struct {
	opts   Options
	path   string
	result stereo.Result
}

// New creates a session; playback starts with Start.
func New(opts Options) *Session {
	return &Session{opts: opts}
}

// Start analyzes the file, launches playback and wires up stereo handling,
// resume and history tracking.
func (s *Session) Start(ctx context.Context, path string) error {
	s.path = path
	s.result = s.opts.Analyzer.Analyze(ctx, path)

	if err := s.opts.Player.Play(path, util.FileStem(path)); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	if s.result.Degraded() {
		s.notify(fmt.Sprintf("3D detection degraded to filename heuristic: %s", s.result.AnalysisError))
	}

	if viper.GetBool(key.PlayerStereoAuto) && s.result.Is3D {
		if err := s.opts.Player.ApplyStereo(s.result.StereoMode); err != nil {
			log.Warnf("apply stereo mode %s: %v", s.result.StereoMode, err)
			s.notify(fmt.Sprintf("Could not configure %s playback: %v", s.result.StereoMode, err))
		}
	}

	if s.opts.Resume {
		s.resume()
	}

	if s.opts.Scheduler != nil {
		s.opts.Scheduler.SetVideo(path)
	}

	if viper.GetBool(key.HistorySaveOnPlay) {
		s.opts.Player.StartIPCTicker(func(timePos int, duration int) {
			if err := history.Save(path, float64(timePos), float64(duration)); err != nil {
				log.Warnf("save playback history: %v", err)
			}
		})
	}

	return nil
}

// resume seeks to the stored position unless the file was effectively
// finished last time.
func (s *Session) resume() {
	record, ok := history.For(s.path).Get()
	if !ok || record.PositionSeconds <= 0 {
		return
	}

	if record.WatchedPercentage >= viper.GetFloat64(key.PlayerCompletionPercentage) {
		return
	}

	if err := s.opts.Player.Seek(record.PositionSeconds); err != nil {
		log.Warnf("resume at %s: %v", util.FormatTime(record.PositionSeconds), err)
		return
	}

	s.notify(fmt.Sprintf("Resumed at %s", util.FormatTime(record.PositionSeconds)))
}

// Result returns the stereo analysis for the playing file.
func (s *Session) Result() stereo.Result {
	return s.result
}

// Path returns the playing file.
func (s *Session) Path() string {
	return s.path
}

// Player exposes the underlying playback engine.
func (s *Session) Player() player.Player {
	return s.opts.Player
}

// Wait returns a channel closed when playback terminates.
func (s *Session) Wait() <-chan struct{} {
	return s.opts.Player.Wait()
}

// Close stops history tracking and shuts the player down. The preview
// scheduler is owned by the caller and stays up across sessions.
func (s *Session) Close() error {
	s.opts.Player.StopIPCTicker()
	return s.opts.Player.Close()
}

func (s *Session) notify(message string) {
	if s.opts.Notify != nil {
		s.opts.Notify(message)
	}
}
