package probe

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Video3DAnalyzer absorbs all of these and degrades to
// the filename heuristic; they are never surfaced past that boundary.
var (
	// ErrToolNotFound indicates ffprobe could not be located.
	ErrToolNotFound = errors.New("ffprobe not found; add it to the PATH or place it next to the application binary")

	// ErrMalformedOutput indicates ffprobe ran but produced unparseable JSON.
	ErrMalformedOutput = errors.New("malformed ffprobe output")
)

// ExecError indicates ffprobe started but exited abnormally. Hint carries a
// platform-specific explanation for known OS-level exit codes; when empty,
// Stderr is the best available diagnostic.
type ExecError struct {
	ExitCode int
	Stderr   string
	Hint     string
}

func (e *ExecError) Error() string {
	if e.Hint != "" {
		return e.Hint
	}
	if e.Stderr != "" {
		return fmt.Sprintf("ffprobe exited with code %d: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("ffprobe exited with code %d", e.ExitCode)
}

// RuntimeDependencyError indicates ffprobe was found but its shared-library
// runtime dependencies are missing next to it.
type RuntimeDependencyError struct {
	Reason string
}

func (e *RuntimeDependencyError) Error() string {
	return e.Reason
}
