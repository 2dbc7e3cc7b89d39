// Package probe invokes ffprobe against a media file and parses its JSON
// output into immutable stream descriptors.
package probe

// Stream holds the parsed properties of a single container stream.
// Produced once per probe call; treated as read-only by consumers.
type Stream struct {
	Index     int
	CodecType string
	CodecName string
	Profile   string
	Width     int
	Height    int

	// Dependent is set for streams flagged as a dependent view of another
	// stream (MVC enhancement layers).
	Dependent bool

	SideData []SideData
	Tags     map[string]string
}

// IsVideo reports whether the stream carries video.
func (s *Stream) IsVideo() bool {
	return s.CodecType == "video"
}

// SideData is an auxiliary per-stream metadata block attached by the
// container or demuxer. Kind names the block ("Stereo 3D"); the remaining
// fields are the stereo3d payload and vary by ffprobe version.
type SideData struct {
	Kind       string
	Type       string
	StereoMode string
	Layout     string
	View       string
}

// Format holds container-level metadata from ffprobe's format section.
type Format struct {
	Filename   string
	FormatName string
	Duration   float64
	Tags       map[string]string
}

// Report is the fully parsed output of a single ffprobe call.
type Report struct {
	Format  Format
	Streams []Stream
}

// VideoStreams returns the subset of streams carrying video.
func (r *Report) VideoStreams() []Stream {
	var out []Stream
	for _, s := range r.Streams {
		if s.IsVideo() {
			out = append(out, s)
		}
	}
	return out
}
