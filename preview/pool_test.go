package preview

import (
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	Convey("Pool", t, func() {
		Convey("Should run every submitted job before shutdown returns", func() {
			pool := NewPool(2)

			var ran int64
			for i := 0; i < 20; i++ {
				pool.Submit(func() {
					atomic.AddInt64(&ran, 1)
				})
			}

			pool.Shutdown()
			So(atomic.LoadInt64(&ran), ShouldEqual, 20)
		})

		Convey("Should tolerate a non-positive worker count", func() {
			pool := NewPool(0)

			done := make(chan struct{})
			pool.Submit(func() { close(done) })
			<-done

			pool.Shutdown()
		})
	})
}
