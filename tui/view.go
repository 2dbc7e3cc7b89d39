package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sylc-player/sylc/icon"
	"github.com/sylc-player/sylc/stereo"
	"github.com/sylc-player/sylc/style"
	"github.com/sylc-player/sylc/util"
)

var (
	paddingStyle = style.New().Padding(1, 2)

	previewBoxStyle = style.New().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.BorderColor).
			Padding(0, 1)
)

func (b *playbackBubble) View() string {
	var view strings.Builder

	view.WriteString(b.titleLine())
	view.WriteString("\n\n")

	view.WriteString(b.timeline())
	view.WriteString("\n")

	if b.scrubbing {
		view.WriteString("\n")
		view.WriteString(b.scrubLine())
		view.WriteString("\n")
	}

	view.WriteString("\n")
	view.WriteString(b.helpC.View(b.keymap))

	content := paddingStyle.Render(view.String())
	if b.width > 0 {
		content = wordwrap.String(content, b.width)
	}

	return b.notifier.View(content)
}

func (b *playbackBubble) titleLine() string {
	title := style.Bold(util.FileStem(b.options.Path))

	result := b.session.Result()
	if !result.Is3D {
		return title
	}

	badge := style.Tag(style.Base, badgeColor(result.StereoMode))(
		fmt.Sprintf("%s %s", icon.Get(icon.Stereo), strings.ToUpper(result.StereoMode.String())),
	)

	return title + "  " + badge
}

func badgeColor(mode stereo.Mode) lipgloss.Color {
	switch mode {
	case stereo.ModeMVC:
		return style.AccentColor
	case stereo.ModeSBS:
		return style.Blue
	case stereo.ModeTAB:
		return style.Teal
	default:
		return style.Yellow
	}
}

func (b *playbackBubble) timeline() string {
	var ratio float64
	if b.duration > 0 {
		ratio = b.position / b.duration
	}

	state := icon.Get(icon.Play)
	if b.paused {
		state = icon.Get(icon.Pause)
	}

	clock := fmt.Sprintf("%s / %s", util.FormatTime(b.position), util.FormatTime(b.duration))

	return fmt.Sprintf("%s\n%s %s", b.progressC.ViewAs(ratio), state, style.Faint(clock))
}

// scrubLine renders the scrub cursor and, once a thumbnail arrived, a small
// placard standing in for the frame a desktop surface would overlay.
func (b *playbackBubble) scrubLine() string {
	cursor := fmt.Sprintf("%s %s", style.Fg(style.AccentColor)("⟫"), util.FormatTime(b.scrubPos))

	if b.previewFrame == nil {
		return cursor + " " + style.Faint("extracting preview...")
	}

	bounds := b.previewFrame.Bounds()
	placard := previewBoxStyle.Render(fmt.Sprintf(
		"%s %s  %dx%d",
		icon.Get(icon.Preview),
		util.FormatTime(float64(b.previewKey)),
		bounds.Dx(),
		bounds.Dy(),
	))

	return cursor + "\n" + placard
}
