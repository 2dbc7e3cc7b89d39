package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/internal/ui"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/log"
	"github.com/sylc-player/sylc/util"
)

func (b *playbackBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.progressC.Width = util.Min(msg.Width-4, 64)
		b.helpC.Width = msg.Width
		return b, nil

	case tickMsg:
		b.poll()
		return b, b.tick()

	case previewMsg:
		b.previewKey = msg.key
		b.previewFrame = msg.frame
		return b, b.waitPreview()

	case playbackEndedMsg:
		return b, tea.Quit

	case string, ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b *playbackBubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keymap := b.keymap

	switch {
	case bubblesKey.Matches(msg, keymap.quit), bubblesKey.Matches(msg, keymap.forceQuit):
		return b, tea.Quit

	case bubblesKey.Matches(msg, keymap.playPause):
		if err := b.session.Player().TogglePause(); err != nil {
			log.Warnf("toggle pause: %v", err)
			return b, nil
		}
		b.paused = !b.paused
		return b, nil

	case bubblesKey.Matches(msg, keymap.scrubLeft):
		return b, b.scrub(-b.scrubStep())

	case bubblesKey.Matches(msg, keymap.scrubRight):
		return b, b.scrub(b.scrubStep())

	case bubblesKey.Matches(msg, keymap.confirm):
		if !b.scrubbing {
			return b, nil
		}

		if err := b.session.Player().Seek(b.scrubPos); err != nil {
			log.Warnf("seek to %.1fs: %v", b.scrubPos, err)
			return b, ui.Notify("Seek failed")
		}

		b.position = b.scrubPos
		b.stopScrubbing()
		return b, nil

	case bubblesKey.Matches(msg, keymap.back):
		b.stopScrubbing()
		return b, nil

	case bubblesKey.Matches(msg, keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	}

	return b, nil
}

// scrub moves the timeline cursor and asks the scheduler for a thumbnail at
// the new position.
func (b *playbackBubble) scrub(delta float64) tea.Cmd {
	if !b.scrubbing {
		b.scrubbing = true
		b.scrubPos = b.position
	}

	b.scrubPos += delta
	if b.scrubPos < 0 {
		b.scrubPos = 0
	}
	if b.duration > 0 && b.scrubPos > b.duration {
		b.scrubPos = b.duration
	}

	b.scheduler.Hover(b.scrubPos)
	return nil
}

func (b *playbackBubble) stopScrubbing() {
	if !b.scrubbing {
		return
	}

	b.scrubbing = false
	b.previewFrame = nil
	b.scheduler.Leave()
}

func (b *playbackBubble) scrubStep() float64 {
	step := viper.GetFloat64(key.TUIScrubStepSeconds)
	if step <= 0 {
		step = 5
	}
	return step
}
