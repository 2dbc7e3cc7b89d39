package tui

import "image"

// previewMsg carries a thumbnail frame ready for display.
type previewMsg struct {
	key   int
	frame image.Image
}

// channelSink bridges the preview scheduler goroutine into the Bubble Tea
// message loop.
type channelSink struct {
	frames chan<- previewMsg
}

func (s channelSink) PreviewReady(key int, frame image.Image) {
	select {
	case s.frames <- previewMsg{key: key, frame: frame}:
	default:
		// UI is not draining; dropping a frame is preferable to
		// stalling the scheduler.
	}
}
