package preview

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/sylc-player/sylc/key"
	"github.com/sylc-player/sylc/log"
)

const (
	// retriggerWindow suppresses a new extraction when the hovered
	// position sits this close (in video seconds) to the last dispatched
	// one.
	retriggerWindow = 0.5

	// staleWindow drops a completed frame when the hover has since moved
	// further than this (in video seconds) from the frame's timestamp.
	staleWindow = 3.0
)

// Sink receives frames that are ready for display. Calls arrive from the
// scheduler goroutine.
type Sink interface {
	PreviewReady(key int, frame image.Image)
}

// Options tune the scheduler. Zero fields fall back to sane defaults.
type Options struct {
	Workers       int
	CacheCapacity int
	Debounce      time.Duration
}

// DefaultOptions reads the scheduler tuning from the configuration.
func DefaultOptions() Options {
	return Options{
		Workers:       viper.GetInt(key.PreviewWorkers),
		CacheCapacity: viper.GetInt(key.PreviewCacheCapacity),
		Debounce:      time.Duration(viper.GetInt(key.PreviewDebounceMs)) * time.Millisecond,
	}
}

// Scheduler turns a stream of timeline hover events into at most one
// extraction at a time: hovers are debounced, results are cached FIFO, and a
// frame that finishes after the hover moved on is cached but not shown.
//
// All state lives in a single event loop goroutine; the public methods only
// post events and are safe to call from any goroutine. No method may be
// called after Close.
type Scheduler struct {
	opts      Options
	extractor Extractor
	sink      Sink
	pool      *Pool
	events    chan any
	done      chan struct{}
}

type (
	hoverEvent struct{ timestamp float64 }
	leaveEvent struct{}
	videoEvent struct{ path string }

	resultEvent struct {
		video     string
		timestamp float64
		frame     image.Image
		err       error
	}

	closeEvent struct{}
)

// NewScheduler returns a running scheduler using the ffmpeg extractor and
// configuration defaults.
func NewScheduler(sink Sink) *Scheduler {
	return NewSchedulerWith(NewExtractor(), sink, DefaultOptions())
}

// NewSchedulerWith allows injecting the extractor and tuning. Intended for
// tests.
func NewSchedulerWith(extractor Extractor, sink Sink, opts Options) *Scheduler {
	if opts.Workers < 1 {
		opts.Workers = 2
	}
	if opts.CacheCapacity < 1 {
		opts.CacheCapacity = 100
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}

	s := &Scheduler{
		opts:      opts,
		extractor: extractor,
		sink:      sink,
		pool:      NewPool(opts.Workers),
		// Buffered so a worker posting its result never blocks on the
		// loop, and the loop never blocks on a busy worker.
		events: make(chan any, 64),
		done:   make(chan struct{}),
	}

	go s.loop()

	return s
}

// Hover reports that the user is holding the timeline cursor at timestamp.
func (s *Scheduler) Hover(timestamp float64) {
	s.events <- hoverEvent{timestamp: timestamp}
}

// Leave reports that the cursor left the timeline; any pending debounced
// extraction is cancelled.
func (s *Scheduler) Leave() {
	s.events <- leaveEvent{}
}

// SetVideo switches the scheduler to a new file and drops every cached
// frame. Results still in flight for the previous file are discarded.
func (s *Scheduler) SetVideo(path string) {
	s.events <- videoEvent{path: path}
}

// Close stops the event loop and waits for the workers to drain.
func (s *Scheduler) Close() {
	s.events <- closeEvent{}
	<-s.done
	s.pool.Shutdown()
}

func (s *Scheduler) loop() {
	defer close(s.done)

	cache := NewCache(s.opts.CacheCapacity)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	timerActive := false

	var (
		video         string
		hoverTS       float64
		hovering      bool
		pendingTS     float64
		pendingValid  bool
		deferredTS    float64
		deferredValid bool
		inFlight      bool
	)
	lastDispatched := math.Inf(-1)

	stopTimer := func() {
		if timerActive && !timer.Stop() {
			<-timer.C
		}
		timerActive = false
		pendingValid = false
	}

	dispatch := func(timestamp float64) {
		inFlight = true
		lastDispatched = timestamp
		jobVideo := video

		s.pool.Submit(func() {
			frame, err := s.extractor.Extract(context.Background(), jobVideo, timestamp)
			s.events <- resultEvent{video: jobVideo, timestamp: timestamp, frame: frame, err: err}
		})
	}

	for {
		select {
		case <-timer.C:
			timerActive = false
			if !pendingValid {
				continue
			}

			timestamp := pendingTS
			pendingValid = false

			// One extraction at a time; the hover that settled while a
			// job was running dispatches as soon as that job reports.
			if inFlight {
				deferredTS, deferredValid = timestamp, true
			} else {
				dispatch(timestamp)
			}

		case ev := <-s.events:
			switch ev := ev.(type) {
			case hoverEvent:
				hoverTS, hovering = ev.timestamp, true
				if video == "" {
					continue
				}

				// Threshold before the cache: a hover this close to the
				// last dispatch is a cursor twitch, not a new request.
				if math.Abs(ev.timestamp-lastDispatched) < retriggerWindow {
					continue
				}

				if frame, ok := cache.Get(cache.Key(ev.timestamp)); ok {
					s.sink.PreviewReady(cache.Key(ev.timestamp), frame)
					lastDispatched = ev.timestamp
					stopTimer()
					deferredValid = false
					continue
				}

				pendingTS, pendingValid = ev.timestamp, true
				if timerActive && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(s.opts.Debounce)
				timerActive = true

			case leaveEvent:
				hovering = false
				stopTimer()
				deferredValid = false

			case videoEvent:
				video = ev.path
				cache.Clear()
				lastDispatched = math.Inf(-1)
				hovering = false
				stopTimer()
				deferredValid = false

			case resultEvent:
				inFlight = false

				switch {
				case ev.err != nil:
					log.Warnf("preview extraction at %.2fs failed: %v", ev.timestamp, ev.err)
				case ev.video != video:
					// Stale result from before a video switch.
				default:
					frameKey := cache.Key(ev.timestamp)
					cache.Put(frameKey, ev.frame)

					if hovering && math.Abs(hoverTS-ev.timestamp) < staleWindow {
						s.sink.PreviewReady(frameKey, ev.frame)
					}
				}

				if deferredValid {
					deferredValid = false
					dispatch(deferredTS)
				}

			case closeEvent:
				stopTimer()
				return
			}
		}
	}
}
