// Package preview extracts thumbnail frames from a video on demand while
// the user scrubs the timeline, with debouncing, a bounded FIFO cache and a
// small worker pool.
package preview

import (
	"image"
	"math"
)

// Cache is a bounded FIFO thumbnail store keyed by whole-second timestamp.
// It is not safe for concurrent use; the scheduler loop owns it.
type Cache struct {
	capacity int
	frames   map[int]image.Image
	order    []int
}

// NewCache returns an empty cache holding at most capacity frames.
// A non-positive capacity falls back to 1.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}

	return &Cache{
		capacity: capacity,
		frames:   make(map[int]image.Image, capacity),
	}
}

// Key maps a fractional timestamp onto its cache slot.
func (c *Cache) Key(timestamp float64) int {
	return int(math.Round(timestamp))
}

// Get returns the cached frame for key, if any.
func (c *Cache) Get(key int) (image.Image, bool) {
	frame, ok := c.frames[key]
	return frame, ok
}

// Put stores a frame under key. When the cache is full the oldest entry is
// evicted before the insert, so the size never exceeds the capacity.
func (c *Cache) Put(key int, frame image.Image) {
	if _, ok := c.frames[key]; ok {
		c.frames[key] = frame
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.frames, oldest)
	}

	c.frames[key] = frame
	c.order = append(c.order, key)
}

// Len returns the number of cached frames.
func (c *Cache) Len() int {
	return len(c.frames)
}

// Clear drops every cached frame. Called when the loaded video changes.
func (c *Cache) Clear() {
	c.frames = make(map[int]image.Image, c.capacity)
	c.order = c.order[:0]
}
