package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sylc-player/sylc/color"
	"github.com/sylc-player/sylc/style"
)

// playbackKeymap defines the keyboard interactions of the playback view.
type playbackKeymap struct {
	quit, forceQuit,
	playPause,
	scrubLeft, scrubRight,
	confirm, back,
	showHelp key.Binding
}

func newPlaybackKeymap() *playbackKeymap {
	return &playbackKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		scrubLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "scrub back"),
		),
		scrubRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "scrub forward"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("seek")),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel scrub"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *playbackKeymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.scrubLeft, k.scrubRight, k.confirm, k.quit}
}

func (k *playbackKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.scrubLeft, k.scrubRight, k.confirm},
		{k.back, k.showHelp, k.quit, k.forceQuit},
	}
}
