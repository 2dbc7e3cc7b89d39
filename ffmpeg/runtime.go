package ffmpeg

import (
	"fmt"
	"strings"
)

// RuntimeProbe verifies that a resolved tool's runtime dependencies are
// present. Platforms without such constraints use a probe that always
// reports satisfied.
type RuntimeProbe interface {
	// Check returns a *MissingRuntimeError when required shared libraries
	// are absent, nil when the tool is ready to run.
	Check(toolPath string) error
}

// MissingRuntimeError reports shared libraries that must sit alongside the
// tool binary but were not found.
type MissingRuntimeError struct {
	ToolPath string
	Missing  []string
}

func (e *MissingRuntimeError) Error() string {
	return fmt.Sprintf(
		"%s found but the following shared libraries are missing in the same folder: %s. "+
			"Copy all libraries shipped with ffmpeg next to the executables, or install a full static build.",
		e.ToolPath, strings.Join(e.Missing, ", "),
	)
}

// DefaultRuntimeProbe returns the capability probe for the current platform.
func DefaultRuntimeProbe() RuntimeProbe {
	return platformRuntimeProbe()
}

// DescribeExitCode maps known OS-level process exit codes to human-readable
// hints. It returns "" for codes with no special meaning; callers should
// then surface the raw stderr text instead.
func DescribeExitCode(code int) string {
	return platformDescribeExitCode(code)
}
