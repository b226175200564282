package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/playcard/internal/adapters/http/api"
	"github.com/okian/playcard/internal/adapters/http/swagger"
	"github.com/okian/playcard/internal/adapters/mq/publisher"
	app "github.com/okian/playcard/internal/app"
	"github.com/okian/playcard/internal/config"
	"github.com/okian/playcard/pkg/logger"
	"github.com/okian/playcard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PLAYCARD_ADDR", ":8080")
			_ = os.Setenv("PLAYCARD_EVENT_QUEUE_SIZE", "1000")
			_ = os.Setenv("PLAYCARD_EVENT_WORKERS", "4")
			defer func() {
				_ = os.Unsetenv("PLAYCARD_ADDR")
				_ = os.Unsetenv("PLAYCARD_EVENT_QUEUE_SIZE")
				_ = os.Unsetenv("PLAYCARD_EVENT_WORKERS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.EventWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				convey.So(app.New(), convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestBuildPublisher(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		cfg := config.New()

		convey.Convey("When no NATS url is configured", func() {
			pub, err := buildPublisher(cfg, logger.Nop())

			convey.Convey("Then events are only logged", func() {
				convey.So(err, convey.ShouldBeNil)
				_, isLog := pub.(*publisher.LogPublisher)
				convey.So(isLog, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the NATS server cannot be reached", func() {
			cfg.NATSURL = "nats://127.0.0.1:1"
			pub, err := buildPublisher(cfg, logger.Nop())

			convey.Convey("Then building the publisher fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(pub, convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it returns once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := app.New()

			convey.Convey("Then it returns once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating metrics directly", func() {
			svc := app.New()
			_, err := svc.CreateGame(context.Background(), []string{"Ann", "Bo"})
			convey.So(err, convey.ShouldBeNil)

			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the application wired the way main wires it", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg := config.New()
		pub, err := buildPublisher(cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		svc := app.New(
			app.WithWorkerCount(cfg.EventWorkers),
			app.WithQueueSize(cfg.EventQueueSize),
			app.WithPublisher(pub),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		swagger.Register(ctx, mux)
		server := api.NewServer(svc, svc,
			api.WithMaxBodyBytes(cfg.MaxBodyBytes),
			api.WithAllowedOrigins(cfg.CORSAllowedOrigins...),
		)
		server.Register(ctx, mux)
		ts := httptest.NewServer(server.Handler(mux))
		defer ts.Close()

		convey.Convey("Then the health, docs and API routes answer", func() {
			for _, path := range []string{"/health", "/api-docs", "/openapi.yaml", "/api", "/api/games", "/stats", "/metrics"} {
				resp, err := http.Get(ts.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then unknown paths get the JSON not found response", func() {
			resp, err := http.Get(ts.URL + "/nope")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("PLAYCARD_ADDR", "")
			_ = os.Setenv("PLAYCARD_MAX_BODY_BYTES", "0")
			defer func() {
				_ = os.Unsetenv("PLAYCARD_ADDR")
				_ = os.Unsetenv("PLAYCARD_MAX_BODY_BYTES")
			}()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with extreme values", func() {
			convey.Convey("Then defaults are applied", func() {
				svc := app.New(
					app.WithWorkerCount(0),
					app.WithQueueSize(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
				stats := svc.GetStats()
				convey.So(stats["workerCount"], convey.ShouldBeGreaterThan, 0)
				convey.So(stats["queueCapacity"], convey.ShouldBeGreaterThan, 0)
			})
		})
	})
}
