package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/playcard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PLAYCARD_ADDR", ":8080")
			_ = os.Setenv("PLAYCARD_LOG_LEVEL", "debug")
			_ = os.Setenv("PLAYCARD_EVENT_QUEUE_SIZE", "64")
			_ = os.Setenv("PLAYCARD_EVENT_WORKERS", "2")
			_ = os.Setenv("PLAYCARD_MAX_BODY_BYTES", "2048")
			_ = os.Setenv("PLAYCARD_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
			_ = os.Setenv("PLAYCARD_NATS_URL", "nats://localhost:4222")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.EventWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 2048)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
				convey.So(cfg.NATSURL, convey.ShouldEqual, "nats://localhost:4222")
				convey.So(cfg.NATSSubject, convey.ShouldEqual, "playcard.ledger")
			})
		})

		convey.Convey("When only PORT is set", func() {
			_ = os.Setenv("PORT", "7000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the listen address uses it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
			})
		})

		convey.Convey("When both PORT and PLAYCARD_ADDR are set", func() {
			_ = os.Setenv("PORT", "7000")
			_ = os.Setenv("PLAYCARD_ADDR", "127.0.0.1:9000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then PLAYCARD_ADDR wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:9000")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_format: json
event_queue_size: 300
cors_allowed_origins:
  - https://cards.example
nats_subject: games.events
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://cards.example"})
				convey.So(cfg.NATSSubject, convey.ShouldEqual, "games.events")
				convey.So(cfg.EventWorkers, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When PORT is set and the YAML file has an addr", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)
			_ = os.Setenv("PORT", "7000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file addr wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When PORT is set and the YAML file has no addr", func() {
			tmpFile := createTempConfigFile(`
event_queue_size: 300
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)
			_ = os.Setenv("PORT", "7000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then PORT still sets the listen address", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 300)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
event_queue_size: 300
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)
			_ = os.Setenv("PLAYCARD_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 300)
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("PLAYCARD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty addr", func() {
			_ = os.Setenv("PLAYCARD_ADDR", "")
			tmpFile := createTempConfigFile(`addr: ""`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PLAYCARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading config with an invalid numeric environment variable", func() {
			_ = os.Setenv("PLAYCARD_EVENT_QUEUE_SIZE", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the body limit is not positive", func() {
			_ = os.Setenv("PLAYCARD_MAX_BODY_BYTES", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the CORS origin list is empty", func() {
			_ = os.Setenv("PLAYCARD_CORS_ALLOWED_ORIGINS", " , ")

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"PORT",
		"PLAYCARD_CONFIG",
		"PLAYCARD_ADDR",
		"PLAYCARD_LOG_LEVEL",
		"PLAYCARD_LOG_FORMAT",
		"PLAYCARD_MAX_BODY_BYTES",
		"PLAYCARD_CORS_ALLOWED_ORIGINS",
		"PLAYCARD_EVENT_QUEUE_SIZE",
		"PLAYCARD_EVENT_WORKERS",
		"PLAYCARD_NATS_URL",
		"PLAYCARD_NATS_SUBJECT",
		"PLAYCARD_NATS_CLIENT_NAME",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "playcard-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
