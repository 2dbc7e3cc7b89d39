// Package history tracks and persists playback progress per media file.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"

	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/where"
)

// cacher provides an abstracted, disk-backed registry for playback progress records.
var cacher = gache.New[map[string]*SavedPlayback](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of playback records from the persistent store.
func Get() (map[string]*SavedPlayback, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedPlayback), nil
	}
	return cached, nil
}

// For returns the saved playback record for a file, if any.
func For(path string) mo.Option[*SavedPlayback] {
	saved, err := Get()
	if err != nil {
		return mo.None[*SavedPlayback]()
	}

	if record, ok := saved[path]; ok {
		return mo.Some(record)
	}

	return mo.None[*SavedPlayback]()
}

// Save persists the playback position of a file. The resume position always
// follows the latest report, while the watched percentage only ever grows so
// a partial re-watch never regresses a completed entry.
func Save(path string, position, duration float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedPlayback(path)
	record.PositionSeconds = position
	record.DurationSeconds = duration
	record.UpdatedAt = time.Now().Unix()

	var percentage float64
	if duration > 0 {
		percentage = position / duration * 100
	}

	if existing, exists := saved[record.encode()]; exists {
		if percentage < existing.WatchedPercentage {
			percentage = existing.WatchedPercentage
		}
	}
	record.WatchedPercentage = percentage

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes the playback record of a file.
func Remove(path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, path)
	return cacher.Set(saved)
}
