// Package stereo classifies video files as stereoscopic 3D content from
// ffprobe metadata, with a filename heuristic fallback.
package stereo

import "strings"

// Mode identifies a stereoscopic packing convention.
type Mode string

const (
	ModeNone     Mode = "none"
	ModeTAB      Mode = "tab"
	ModeAnaglyph Mode = "anaglyph"
	ModeSBS      Mode = "sbs"
	ModeMVC      Mode = "mvc"
)

// Priority orders modes for the promotion rule: a signal replaces the
// current mode only when its priority is greater than or equal to the
// current one (ties favor the later-evaluated signal).
func (m Mode) Priority() int {
	switch m {
	case ModeTAB, ModeAnaglyph:
		return 1
	case ModeSBS:
		return 2
	case ModeMVC:
		return 3
	default:
		return 0
	}
}

func (m Mode) String() string { return string(m) }

// monoTokens denote explicitly non-stereoscopic material.
var monoTokens = map[string]bool{
	"mono": true, "left": true, "right": true, "both": true, "2d": true,
}

var (
	anaglyphKeywords = []string{"anaglyph", "cyan", "magenta", "red_cyan", "cyan_red"}
	mvcKeywords      = []string{
		"frame_altern", "framealternate", "frame_packing", "frame_sequential",
		"frame_packed", "view_packed", "mvc", "framepacking", "frameinterleaved",
		"block_lr", "block_rl", "packed",
	}
	tabKeywords = []string{
		"top_bottom", "bottom_top", "tab", "over_under", "under_over",
		"block_tb", "block_bt", "topbottom", "bt", "tb",
	}
	sbsKeywords = []string{
		"side_by_side", "sbs", "left_right", "right_left",
		"row_interleaved", "column_interleaved",
	}
)

// ClassifyToken normalizes a raw stereo-mode string and maps it onto a Mode.
// The second return is false when the token is empty, denotes mono/2D
// material, or matches no known convention. Keyword groups are checked in a
// fixed order; anaglyph before mvc so "red_cyan packed" lands on anaglyph,
// mvc before tab/sbs so "frame_packed" never matches the looser "packed"
// family of a later group.
func ClassifyToken(raw string) (Mode, bool) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return ModeNone, false
	}
	mode = strings.NewReplacer("-", "_", " ", "_").Replace(mode)

	if monoTokens[mode] {
		return ModeNone, false
	}

	contains := func(keywords []string) bool {
		for _, kw := range keywords {
			if strings.Contains(mode, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(anaglyphKeywords):
		return ModeAnaglyph, true
	case contains(mvcKeywords):
		return ModeMVC, true
	case contains(tabKeywords):
		return ModeTAB, true
	case contains(sbsKeywords):
		return ModeSBS, true
	default:
		return ModeNone, false
	}
}
