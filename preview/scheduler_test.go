package preview

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls []float64

	// When non-nil, Extract blocks until the channel is closed or
	// receives.
	block chan struct{}
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, timestamp float64) (image.Image, error) {
	f.mu.Lock()
	f.calls = append(f.calls, timestamp)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}

	return testFrame(), nil
}

func (f *fakeExtractor) timestamps() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.calls...)
}

type fakeSink struct {
	published chan int
}

func newFakeSink() *fakeSink {
	return &fakeSink{published: make(chan int, 16)}
}

func (s *fakeSink) PreviewReady(key int, _ image.Image) {
	s.published <- key
}

func (s *fakeSink) next(timeout time.Duration) (int, bool) {
	select {
	case key := <-s.published:
		return key, true
	case <-time.After(timeout):
		return 0, false
	}
}

func testScheduler(extractor Extractor, sink Sink) *Scheduler {
	return NewSchedulerWith(extractor, sink, Options{
		Workers:       2,
		CacheCapacity: 100,
		Debounce:      10 * time.Millisecond,
	})
}

func settle() {
	time.Sleep(150 * time.Millisecond)
}

func TestScheduler(t *testing.T) {
	Convey("Scheduler", t, func() {
		Convey("Rapid hovers collapse into one extraction of the latest position", func() {
			extractor := &fakeExtractor{}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(10.2)
			s.Hover(30.4)
			s.Hover(52.6)
			settle()

			So(extractor.timestamps(), ShouldResemble, []float64{52.6})

			key, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 53)
		})

		Convey("A hover near the last extracted position does not re-extract", func() {
			extractor := &fakeExtractor{}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(40.0)
			settle()
			So(extractor.timestamps(), ShouldResemble, []float64{40.0})

			// 40.3 sits 0.3s from the last dispatch, inside the
			// re-trigger window.
			s.Hover(40.3)
			settle()
			So(extractor.timestamps(), ShouldResemble, []float64{40.0})
		})

		Convey("A cached position publishes immediately without extraction", func() {
			extractor := &fakeExtractor{}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(20.0)
			settle()
			_, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)

			s.Hover(60.0)
			settle()
			_, ok = sink.next(time.Second)
			So(ok, ShouldBeTrue)

			// Returning to 20.4 hits the cached key 20.
			s.Hover(20.4)
			key, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 20)
			So(extractor.timestamps(), ShouldResemble, []float64{20.0, 60.0})
		})

		Convey("A hover right after a cache hit stays suppressed", func() {
			extractor := &fakeExtractor{}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(10.6)
			settle()
			_, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)

			s.Hover(50.0)
			settle()
			_, ok = sink.next(time.Second)
			So(ok, ShouldBeTrue)

			// Cache hit on key 11 makes 11.4 the last dispatched position.
			s.Hover(11.4)
			key, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 11)

			// 11.6 sits 0.2s from it, inside the re-trigger window: no
			// lookup, no extraction, no publish.
			s.Hover(11.6)
			settle()
			_, ok = sink.next(50 * time.Millisecond)
			So(ok, ShouldBeFalse)
			So(extractor.timestamps(), ShouldResemble, []float64{10.6, 50.0})
		})

		Convey("Leaving the timeline cancels the pending extraction", func() {
			extractor := &fakeExtractor{}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(25.0)
			s.Leave()
			settle()

			So(extractor.timestamps(), ShouldBeEmpty)
		})

		Convey("A frame finishing after the hover moved far away is cached but not shown", func() {
			extractor := &fakeExtractor{block: make(chan struct{})}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/movie.mkv")
			s.Hover(50.0)
			settle() // dispatches 50.0, which now blocks

			s.Hover(300.0)
			settle() // debounce fires while 50.0 is in flight

			close(extractor.block)
			settle()

			// 50.0 finished stale and was swallowed; 300.0 dispatched
			// right after it and published.
			key, ok := sink.next(time.Second)
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 300)
			So(extractor.timestamps(), ShouldResemble, []float64{50.0, 300.0})

			// The stale frame still landed in the cache.
			s.Hover(50.0)
			key, ok = sink.next(time.Second)
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, 50)
			So(extractor.timestamps(), ShouldResemble, []float64{50.0, 300.0})
		})

		Convey("Switching videos drops the cache and in-flight results", func() {
			extractor := &fakeExtractor{block: make(chan struct{})}
			sink := newFakeSink()
			s := testScheduler(extractor, sink)
			defer s.Close()

			s.SetVideo("/media/first.mkv")
			s.Hover(15.0)
			settle() // dispatches and blocks

			s.SetVideo("/media/second.mkv")
			close(extractor.block)
			settle()

			_, ok := sink.next(50 * time.Millisecond)
			So(ok, ShouldBeFalse)

			// Same position on the new video extracts fresh.
			s.Hover(15.0)
			settle()
			So(extractor.timestamps(), ShouldResemble, []float64{15.0, 15.0})
		})
	})
}
