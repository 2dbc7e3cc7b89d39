// Package cache prunes transient preview frames left behind by interrupted runs.
package cache

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/where"
)

// TTL is the maximum age of an orphaned preview frame before it is swept.
const TTL = 24 * time.Hour

// CollectGarbage starts an asynchronous background sweep of expired
// preview frames.
func CollectGarbage() {
	go Sweep()
}

// Sweep removes preview frames in the temp directory older than the TTL.
// Extraction normally deletes its own frame; this catches the ones a crash
// or kill left behind.
func Sweep() {
	dir := where.Temp()

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	for _, info := range entries {
		if info.IsDir() {
			continue
		}

		name := info.Name()
		if !strings.HasPrefix(name, "preview_") || !strings.HasSuffix(name, ".jpg") {
			continue
		}

		if time.Since(info.ModTime()) > TTL {
			_ = filesystem.API().Remove(filepath.Join(dir, name))
		}
	}
}
