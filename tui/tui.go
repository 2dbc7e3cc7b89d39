// Package tui provides the playback terminal user interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Path is the media file to play.
	Path string

	// Continue resumes from the saved playback position.
	Continue bool
}

// Run starts playback of the given file and executes the Bubble Tea control loop.
func Run(options *Options) error {
	bubble, err := newBubble(options)
	if err != nil {
		return err
	}
	defer bubble.shutdown()

	_, err = tea.NewProgram(bubble).Run()
	return err
}
