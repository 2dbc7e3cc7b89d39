//go:build !windows

package ffmpeg

type noopRuntimeProbe struct{}

// Check always reports satisfied; non-Windows ffmpeg builds link their
// libraries through the system loader.
func (noopRuntimeProbe) Check(string) error { return nil }

func platformRuntimeProbe() RuntimeProbe {
	return noopRuntimeProbe{}
}

func platformDescribeExitCode(int) string { return "" }
