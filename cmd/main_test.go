package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pizzapunten/pizzapunten/internal/adapters/http/api"
	service "github.com/pizzapunten/pizzapunten/internal/app"
	"github.com/pizzapunten/pizzapunten/internal/config"
	"github.com/pizzapunten/pizzapunten/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PIZZA_ADDR", ":8080")
			_ = os.Setenv("PIZZA_FEED_URL", "http://feed.example/csv")
			_ = os.Setenv("PIZZA_REFRESH_INTERVAL", "10s")
			defer func() {
				_ = os.Unsetenv("PIZZA_ADDR")
				_ = os.Unsetenv("PIZZA_FEED_URL")
				_ = os.Unsetenv("PIZZA_REFRESH_INTERVAL")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FeedURL, convey.ShouldEqual, "http://feed.example/csv")
				convey.So(cfg.Interval(), convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithFeedURL("http://feed.example/csv"),
					service.WithInterval(time.Minute),
					service.WithMaxRetries(1),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater runs one pass", func() {
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
		})

		convey.Convey("When the service metrics updater runs one pass", func() {
			svc := service.New()
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
