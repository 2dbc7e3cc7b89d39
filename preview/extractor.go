package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/ffmpeg"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/where"
)

// Extractor produces a single scaled-down frame from a video at a given
// timestamp.
type Extractor interface {
	Extract(ctx context.Context, videoPath string, timestamp float64) (image.Image, error)
}

type ffmpegExtractor struct {
	resolve func(name string) (string, error)
	width   int
	timeout time.Duration
}

// NewExtractor returns an Extractor backed by the ffmpeg binary, with frame
// width and per-extraction timeout taken from the configuration.
func NewExtractor() Extractor {
	return &ffmpegExtractor{
		resolve: ffmpeg.Resolve,
		width:   viper.GetInt(key.PreviewWidth),
		timeout: time.Duration(viper.GetInt(key.PreviewTimeoutMs)) * time.Millisecond,
	}
}

func (e *ffmpegExtractor) Extract(ctx context.Context, videoPath string, timestamp float64) (image.Image, error) {
	toolPath, err := e.resolve("ffmpeg")
	if err != nil {
		return nil, err
	}

	framePath := filepath.Join(where.Temp(), fmt.Sprintf("preview_%d.jpg", time.Now().UnixMicro()))
	defer func() {
		_ = filesystem.API().Remove(framePath)
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Seeking before the input keeps extraction fast on large files.
	cmd := exec.CommandContext(ctx, toolPath,
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:-1", e.width),
		"-q:v", "8",
		"-y",
		framePath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("extract frame at %.3fs: timed out after %s", timestamp, e.timeout)
		}
		return nil, fmt.Errorf("extract frame at %.3fs: %w: %s", timestamp, err, bytes.TrimSpace(stderr.Bytes()))
	}

	file, err := filesystem.API().Open(framePath)
	if err != nil {
		return nil, fmt.Errorf("open extracted frame: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	frame, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}

	return frame, nil
}
