package player

import (
	"github.com/sylc-player/sylc/log"
	"github.com/sylc-player/sylc/stereo"
)

// Stereo3D filter graphs converting packed input to a mono output stream.
const (
	sbsFilter = "[vid1] stereo3d=sbsl:ml [vo]"
	tabFilter = "[vid1] stereo3d=abl:ml [vo]"
)

// ApplyStereo reconfigures the running mpv instance for the given packing.
//
// Frame-packed (MVC) material needs software decoding, an explicit scale to
// the full packed frame and a fixed display rate; half-width and half-height
// packings go through a stereo3d filter graph that keeps only the left eye.
// ModeNone clears any previously applied graph so plain files play untouched.
func (m *MPV) ApplyStereo(mode stereo.Mode) error {
	log.Infof("applying stereo mode %s", mode)

	switch mode {
	case stereo.ModeMVC:
		if err := m.Set("hwdec", "no"); err != nil {
			return err
		}
		if err := m.Set("vf", "scale=1920:2205"); err != nil {
			return err
		}
		return m.Set("override-display-fps", 24)

	case stereo.ModeSBS:
		return m.Set("lavfi-complex", sbsFilter)

	case stereo.ModeTAB:
		return m.Set("lavfi-complex", tabFilter)

	default:
		// Anaglyph displays as-is on a 2D screen.
		return m.Set("lavfi-complex", "")
	}
}
