package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/featurelab/internal/config"
	"github.com/okian/featurelab/pkg/metrics"
)

func TestRunFailures(t *testing.T) {
	convey.Convey("Given invalid configuration", t, func() {
		_ = os.Setenv("FEATURELAB_MAX_BODY_BYTES", "0")
		defer func() { _ = os.Unsetenv("FEATURELAB_MAX_BODY_BYTES") }()

		convey.Convey("Then run fails before serving", func() {
			err := run()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an unknown log format", t, func() {
		_ = os.Setenv("FEATURELAB_LOG_FORMAT", "xml")
		defer func() { _ = os.Unsetenv("FEATURELAB_LOG_FORMAT") }()

		convey.Convey("Then run fails", func() {
			convey.So(run(), convey.ShouldNotBeNil)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When it runs until its context expires", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)

			convey.Convey("Then the goroutine gauge is populated", func() {
				n, err := testutil.GatherAndCount(metrics.GetRegistry(), "featurelab_system_goroutines")
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given a config with custom metric naming", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "lab"
		cfg.MetricsSubsystem = "edge"
		cfg.MetricsConstLabels = map[string]string{"region": "eu"}

		metrics.Configure(metricsOptions(cfg)...)
		defer metrics.Configure()

		metrics.RecordHTTPRequest("root", "GET", "200")

		convey.Convey("Then the registry exposes the renamed families", func() {
			n, err := testutil.GatherAndCount(metrics.GetRegistry(), "lab_edge_requests_total")
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, 1)
		})
	})
}
