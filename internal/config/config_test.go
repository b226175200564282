package config_test

import (
	"testing"

	"github.com/okian/playcard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 10<<20)
			convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.EventWorkers, convey.ShouldEqual, 1)
			convey.So(cfg.NATSURL, convey.ShouldBeEmpty)
			convey.So(cfg.NATSSubject, convey.ShouldEqual, "playcard.ledger")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
