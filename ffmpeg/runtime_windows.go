//go:build windows

package ffmpeg

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/sylc-player/sylc/filesystem"
)

// requiredRuntimeBases are the shared-library base names ffmpeg/ffprobe
// dynamic builds expect as versioned DLLs alongside the executable.
var requiredRuntimeBases = []string{"avcodec", "avformat", "avutil"}

type windowsRuntimeProbe struct{}

// Check globs for avcodec-*.dll, avformat-*.dll and avutil-*.dll next to
// the tool and reports the base names of any that are absent.
func (windowsRuntimeProbe) Check(toolPath string) error {
	folder := filepath.Dir(toolPath)

	var missing []string
	for _, base := range requiredRuntimeBases {
		pattern := filepath.Join(folder, fmt.Sprintf("%s-*.dll", base))
		matches, err := afero.Glob(filesystem.API().Fs, pattern)
		if err != nil || len(matches) == 0 {
			missing = append(missing, base)
		}
	}

	if len(missing) > 0 {
		return &MissingRuntimeError{ToolPath: toolPath, Missing: missing}
	}
	return nil
}

func platformRuntimeProbe() RuntimeProbe {
	return windowsRuntimeProbe{}
}

// NTSTATUS codes observed when a dynamic ffmpeg build cannot start.
// Both the raw unsigned form and Go's sign-extended form are matched.
func platformDescribeExitCode(code int) string {
	switch code {
	case 3221225781, -1073741515: // 0xC0000135
		return "Failed to start the executable (code 0xC0000135). " +
			"This usually indicates that DLLs for ffmpeg/ffprobe are missing. " +
			"Download a static build of ffmpeg and place ffmpeg.exe/ffprobe.exe and their DLLs " +
			"in the application's folder, or add the ffmpeg /bin folder to your PATH."
	case 3221225501, -1073741795: // 0xC0000025
		return "The system prevented ffmpeg/ffprobe from running (code 0xC0000025). " +
			"Check your antivirus or try running the application with sufficient privileges."
	}
	return ""
}
