package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sylc-player/sylc/ffmpeg"
	"github.com/sylc-player/sylc/log"
)

// Gateway resolves and invokes ffprobe. The zero value is not usable;
// construct with NewGateway.
type Gateway struct {
	resolve func(name string) (string, error)
	runtime ffmpeg.RuntimeProbe
}

// NewGateway returns a Gateway wired to the platform tool resolver and
// runtime capability probe.
func NewGateway() *Gateway {
	return &Gateway{
		resolve: ffmpeg.Resolve,
		runtime: ffmpeg.DefaultRuntimeProbe(),
	}
}

// NewGatewayWith allows injecting resolution and capability checking.
// Intended for tests.
func NewGatewayWith(resolve func(string) (string, error), runtime ffmpeg.RuntimeProbe) *Gateway {
	return &Gateway{resolve: resolve, runtime: runtime}
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// report. A single invocation per call; no retry. Failures map onto the
// package error taxonomy so the caller can distinguish a missing tool from
// a missing runtime from a crashed run.
func (g *Gateway) Probe(ctx context.Context, path string) (*Report, error) {
	toolPath, err := g.resolve("ffprobe")
	if err != nil {
		return nil, ErrToolNotFound
	}

	if err := g.runtime.Check(toolPath); err != nil {
		log.Warnf("ffprobe runtime check failed: %v", err)
		return nil, &RuntimeDependencyError{Reason: err.Error()}
	}

	cmd := exec.CommandContext(ctx, toolPath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return nil, &ExecError{
				ExitCode: code,
				Stderr:   stderr.String(),
				Hint:     ffmpeg.DescribeExitCode(code),
			}
		}
		return nil, fmt.Errorf("run ffprobe: %w", err)
	}

	return ParseReport(out)
}

// ParseReport converts raw ffprobe JSON output into a Report.
// Exported for testing without a real ffprobe binary.
func ParseReport(data []byte) (*Report, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return buildReport(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index       int                `json:"index"`
	CodecName   string             `json:"codec_name"`
	CodecType   string             `json:"codec_type"`
	Profile     string             `json:"profile"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Disposition map[string]int     `json:"disposition"`
	SideData    []ffprobeSideData  `json:"side_data_list"`
	Tags        map[string]string  `json:"tags"`
}

// "side_data_type" names the block; for stereo3d blocks "type" carries the
// packing. Old ffprobe builds put the block name under "type" instead, so
// that key doubles as the kind when "side_data_type" is absent.
type ffprobeSideData struct {
	SideDataType string `json:"side_data_type"`
	Type         string `json:"type"`
	StereoMode   string `json:"stereo_mode"`
	Layout       string `json:"layout"`
	View         string `json:"view"`
}

// --- Conversion from wire types to domain types ---

func buildReport(raw *ffprobeOutput) *Report {
	report := &Report{
		Format: Format{
			Filename:   raw.Format.Filename,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Tags:       raw.Format.Tags,
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		stream := Stream{
			Index:     s.Index,
			CodecType: s.CodecType,
			CodecName: s.CodecName,
			Profile:   s.Profile,
			Width:     s.Width,
			Height:    s.Height,
			Dependent: s.Disposition["dependent"] == 1,
			Tags:      s.Tags,
		}

		for _, sd := range s.SideData {
			kind := sd.SideDataType
			if kind == "" {
				kind = sd.Type
			}
			stream.SideData = append(stream.SideData, SideData{
				Kind:       kind,
				Type:       sd.Type,
				StereoMode: sd.StereoMode,
				Layout:     sd.Layout,
				View:       sd.View,
			})
		}

		report.Streams = append(report.Streams, stream)
	}

	return report
}

// ffprobe returns numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
