package tui

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sylc-player/sylc/internal/ui"
	"github.com/sylc-player/sylc/player"
	"github.com/sylc-player/sylc/preview"
	"github.com/sylc-player/sylc/session"
	"github.com/sylc-player/sylc/stereo"
)

const pollInterval = 500 * time.Millisecond

// playbackBubble is the Bubble Tea model of the playback view.
type playbackBubble struct {
	options *Options
	keymap  *playbackKeymap

	session   *session.Session
	scheduler *preview.Scheduler
	previews  chan previewMsg

	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	// pendingNotices collects messages raised before the program loop
	// started, for delivery on Init.
	pendingNotices []string

	position float64
	duration float64
	paused   bool

	scrubbing bool
	scrubPos  float64

	previewKey   int
	previewFrame image.Image

	width int
}

type (
	tickMsg          time.Time
	playbackEndedMsg struct{}
)

// newBubble starts the playback session and builds the UI model around it.
func newBubble(options *Options) (*playbackBubble, error) {
	bubble := &playbackBubble{
		options:   options,
		keymap:    newPlaybackKeymap(),
		previews:  make(chan previewMsg, 8),
		progressC: progress.New(progress.WithDefaultGradient()),
		helpC:     help.New(),
		notifier:  &ui.Model{},
	}

	bubble.scheduler = preview.NewScheduler(channelSink{frames: bubble.previews})

	bubble.session = session.New(session.Options{
		Player:    player.NewMPV(),
		Analyzer:  stereo.NewAnalyzer(),
		Scheduler: bubble.scheduler,
		Resume:    options.Continue,
		Notify: func(message string) {
			bubble.pendingNotices = append(bubble.pendingNotices, message)
		},
	})

	if err := bubble.session.Start(context.Background(), options.Path); err != nil {
		bubble.scheduler.Close()
		return nil, err
	}

	return bubble, nil
}

func (b *playbackBubble) shutdown() {
	b.scheduler.Close()
	_ = b.session.Close()
}

func (b *playbackBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.tick(), b.waitPreview(), b.waitExit()}

	for _, notice := range b.pendingNotices {
		cmds = append(cmds, ui.Notify(notice))
	}
	b.pendingNotices = nil

	return tea.Batch(cmds...)
}

func (b *playbackBubble) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *playbackBubble) waitPreview() tea.Cmd {
	return func() tea.Msg {
		return <-b.previews
	}
}

func (b *playbackBubble) waitExit() tea.Cmd {
	return func() tea.Msg {
		<-b.session.Wait()
		return playbackEndedMsg{}
	}
}

// poll refreshes playback state from the player. IPC errors are transient
// (startup, seeks), so failed reads keep the previous values.
func (b *playbackBubble) poll() {
	p := b.session.Player()

	if position, err := p.GetTimePos(); err == nil {
		b.position = position
	}
	if duration, err := p.GetDuration(); err == nil {
		b.duration = duration
	}
	if paused, err := p.GetPausedStatus(); err == nil {
		b.paused = paused
	}
}
