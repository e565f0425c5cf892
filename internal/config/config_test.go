package config_test

import (
	"testing"

	"github.com/okian/f1predict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8501")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "model/best_pipeline.json")
			convey.So(cfg.CacheSize, convey.ShouldEqual, 1024)
			convey.So(cfg.ShutdownTimeoutSec, convey.ShouldEqual, 30)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFile, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
