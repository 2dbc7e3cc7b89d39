package history

import (
	"fmt"

	"github.com/sylc-player/sylc/util"
)

// SavedPlayback represents a single playback entry preserved in the user's history.
type SavedPlayback struct {
	Path              string  `json:"path"`
	Title             string  `json:"title"`
	PositionSeconds   float64 `json:"position_seconds"`
	DurationSeconds   float64 `json:"duration_seconds"`
	WatchedPercentage float64 `json:"watched_percentage"`
	UpdatedAt         int64   `json:"updated_at"`
}

func (s *SavedPlayback) encode() string {
	return s.Path
}

func (s *SavedPlayback) String() string {
	return fmt.Sprintf("%s : %s / %s", s.Title, util.FormatTime(s.PositionSeconds), util.FormatTime(s.DurationSeconds))
}

func newSavedPlayback(path string) *SavedPlayback {
	return &SavedPlayback{
		Path:  path,
		Title: util.FileStem(path),
	}
}
