// Package ffmpeg locates the external ffmpeg/ffprobe tools and validates
// that their platform runtime requirements are satisfied before invocation.
package ffmpeg

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sylc-player/sylc/constant"
	"github.com/sylc-player/sylc/log"
)

// ErrNotFound indicates that a tool could not be located on the PATH or
// next to the application binary.
var ErrNotFound = errors.New("tool not found")

var (
	resolveMu    sync.Mutex
	resolveCache = make(map[string]string)
)

// Resolve returns an absolute path to the named external tool.
//
// Search order: PATH lookup (with the ".exe" suffix tried first on Windows),
// then a candidate colocated with the application binary. The first match
// wins and is memoized for the process lifetime.
func Resolve(name string) (string, error) {
	resolveMu.Lock()
	defer resolveMu.Unlock()

	if cached, ok := resolveCache[name]; ok {
		return cached, nil
	}

	var candidates []string
	if runtime.GOOS == constant.Windows && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		candidates = append(candidates, name+".exe")
	}
	candidates = append(candidates, name)

	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	for _, candidate := range candidates {
		if resolved, err := exec.LookPath(candidate); err == nil {
			abs, err := filepath.Abs(resolved)
			if err != nil {
				abs = resolved
			}
			resolveCache[name] = abs
			log.Debugf("resolved %s to %s", name, abs)
			return abs, nil
		}

		if exeDir == "" {
			continue
		}
		local := filepath.Join(exeDir, candidate)
		if _, err := os.Stat(local); err == nil {
			resolveCache[name] = local
			log.Debugf("resolved %s to colocated %s", name, local)
			return local, nil
		}
	}

	return "", ErrNotFound
}

// ClearResolveCache drops all memoized tool paths. Intended for tests.
func ClearResolveCache() {
	resolveMu.Lock()
	defer resolveMu.Unlock()
	resolveCache = make(map[string]string)
}
