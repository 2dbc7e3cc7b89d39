package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/sylc-player/sylc/filesystem"
	"github.com/sylc-player/sylc/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				val := viper.Get(name)
				So(val, ShouldNotBeNil)
			}
		})

		Convey("Preview defaults should match the scheduler contract", func() {
			_ = Setup()
			So(viper.GetInt(key.PreviewWorkers), ShouldEqual, 2)
			So(viper.GetInt(key.PreviewCacheCapacity), ShouldEqual, 100)
			So(viper.GetInt(key.PreviewDebounceMs), ShouldEqual, 100)
			So(viper.GetInt(key.PreviewTimeoutMs), ShouldEqual, 2000)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("preview.cache.capacity")
			So(result, ShouldEqual, "preview_cache_capacity")
		})
	})
}
