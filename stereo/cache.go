package stereo

import (
	"fmt"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/where"
)

// cacheData defines the structured format for persisting analysis results to disk.
type cacheData struct {
	Results map[string]Result `json:"results"`
}

// resultCacher provides a thread-safe, disk-backed registry of analysis
// results keyed by file identity (path, size, mtime) so edited files are
// re-probed.
type resultCacher struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

// fileKey derives the cache key from the file's current identity. Files
// that cannot be stat'ed are never cached.
func fileKey(path string) (string, bool) {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().Unix()), true
}

func (c *resultCacher) enabled() bool {
	return viper.GetBool(key.StereoCache)
}

// Get retrieves a previously persisted result for the file's current identity.
func (c *resultCacher) Get(path string) mo.Option[Result] {
	if !c.enabled() {
		return mo.None[Result]()
	}

	k, ok := fileKey(path)
	if !ok {
		return mo.None[Result]()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[Result]()
	}

	if result, found := data.Results[k]; found {
		return mo.Some(result)
	}
	return mo.None[Result]()
}

// Set persists a result under the file's current identity.
func (c *resultCacher) Set(path string, result Result) error {
	if !c.enabled() {
		return nil
	}

	k, ok := fileKey(path)
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		data = &cacheData{Results: make(map[string]Result)}
	}

	data.Results[k] = result
	return c.internal.Set(data)
}

// defaultResultCacher persists classification results between runs.
var defaultResultCacher = &resultCacher{
	internal: gache.New[*cacheData](
		&gache.Options{
			Path:       where.StereoCache(),
			Lifetime:   time.Hour * 24 * 30,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}
