// Package player defines an abstraction layer for media playback engines.
// The primary implementation targets mpv via its JSON-IPC interface.
package player

import "github.com/sylc-player/sylc/stereo"

// Player encapsulates the required capabilities for a media playback backend.
type Player interface {
	// Play starts playback of the given file with the specified window title.
	// If a player instance is already running, it loads the new file into it.
	Play(path string, title string) error

	// TogglePause inverts the current playback suspension state.
	TogglePause() error

	// GetTimePos retrieves the current absolute playback position in seconds.
	GetTimePos() (float64, error)

	// GetDuration retrieves the total length of the active media file in seconds.
	GetDuration() (float64, error)

	// GetPercentWatched calculates the relative playback completion percentage (0-100).
	GetPercentWatched() (float64, error)

	// GetPausedStatus retrieves the current suspension state of the playback engine.
	GetPausedStatus() (bool, error)

	// HasActivePlayback verifies if the player has a media file currently loaded.
	HasActivePlayback() (bool, error)

	// Seek transitions the playback position to an absolute timestamp in seconds.
	Seek(seconds float64) error

	// ApplyStereo reconfigures the running player for the given stereoscopic packing.
	ApplyStereo(mode stereo.Mode) error

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// StartIPCTicker initializes a background task polling playback metrics,
	// invoking the callback roughly once per second with the current state.
	StartIPCTicker(callback func(timePos int, duration int))

	// StopIPCTicker terminates the background polling task.
	StopIPCTicker()

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}

	// Close terminates the playback engine and releases its resources.
	Close() error
}
