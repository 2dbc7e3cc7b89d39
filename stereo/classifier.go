package stereo

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/sylc-player/sylc/probe"
)

// Result is the outcome of a single 3D analysis pass. Created once per
// analyzed file, immutable after construction, and scoped to the player
// session for that file.
type Result struct {
	Is3D        bool   `json:"is_3d"`
	StereoMode  Mode   `json:"stereo_mode"`
	HasMVCTrack bool   `json:"has_mvc_track"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`

	// AnalysisError holds a human-readable diagnostic when metadata
	// probing failed and the result degraded to the filename heuristic.
	AnalysisError string `json:"analysis_error,omitempty"`
}

// Degraded reports whether the result came from the filename heuristic
// rather than real stream metadata.
func (r Result) Degraded() bool { return r.AnalysisError != "" }

// promote applies the priority rule: the new mode replaces the current one
// when its priority is >= the current priority, so equal-priority signals
// evaluated later win. Is3D is latched and never reverts within a pass.
func promote(r *Result, mode Mode, markMVC bool) {
	if mode == ModeNone {
		return
	}

	if mode.Priority() >= r.StereoMode.Priority() {
		r.StereoMode = mode
	}

	r.Is3D = true

	if markMVC || mode == ModeMVC {
		r.HasMVCTrack = true
	}
}

// framePacked reports whether a stream geometry matches a known
// frame-packed signature: 1920x2205 (1080p + blanking), 1920x2160, or
// 3840x4320 (2160p doubled).
func framePacked(width, height int) bool {
	return (width == 1920 && (height == 2205 || height == 2160)) ||
		(width == 3840 && height == 4320)
}

// Classify inspects a probe report and decides whether the file is
// stereoscopic and in which packing. Pure and deterministic: identical
// reports always produce identical results.
func Classify(report *probe.Report) Result {
	result := Result{StereoMode: ModeNone}

	for _, stream := range report.Streams {
		if !stream.IsVideo() {
			continue
		}

		result.Width = stream.Width
		result.Height = stream.Height

		// Resolution override: a frame-packed geometry decides the file
		// outright and short-circuits tag/side-data inspection for this
		// stream.
		packed := framePacked(stream.Width, stream.Height)
		if packed {
			result.Is3D = true
			result.HasMVCTrack = true
			result.StereoMode = ModeMVC
		}

		codec := strings.ToLower(stream.CodecName)
		profile := strings.ToLower(stream.Profile)

		if codec == "mvc" || codec == "h264" {
			if strings.Contains(profile, "stereo") || strings.Contains(profile, "mvc") {
				promote(&result, ModeMVC, true)
			}
		}

		if stream.Dependent {
			promote(&result, ModeMVC, true)
		}

		if packed {
			continue
		}

		for _, sd := range stream.SideData {
			kind := strings.ReplaceAll(strings.ToLower(sd.Kind), " ", "_")
			if !strings.Contains(kind, "stereo_3d") && !strings.Contains(kind, "stereo3d") {
				continue
			}

			// Which payload field carries the packing varies by ffprobe
			// version; take the first one that classifies.
			for _, candidate := range []string{sd.StereoMode, sd.Type, sd.Layout, sd.View} {
				if mode, ok := ClassifyToken(candidate); ok {
					promote(&result, mode, mode == ModeMVC)
					break
				}
			}
		}

		// Matroska and MakeMKV write stereoscopy into stream tags. Keys are
		// visited in sorted order so equal-priority conflicts resolve the
		// same way every pass.
		tagKeys := lo.Keys(stream.Tags)
		sort.Strings(tagKeys)
		for _, tagKey := range tagKeys {
			if !strings.HasPrefix(strings.ToLower(tagKey), "stereo") {
				continue
			}
			if mode, ok := ClassifyToken(stream.Tags[tagKey]); ok {
				promote(&result, mode, false)
			}
		}
	}

	// Separate-MVC-stream fallback: some rips carry the dependent view as
	// its own stream without any of the signals above.
	if !result.HasMVCTrack {
		for _, stream := range report.Streams {
			if stream.CodecName == "mvc" {
				result.Is3D = true
				result.HasMVCTrack = true
				result.StereoMode = ModeMVC
				break
			}
		}
	}

	return result
}
