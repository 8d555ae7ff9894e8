package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "featurelab")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("api"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "api")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
				So(manager.constLabels, ShouldContainKey, "env")
			})
		})

		Convey("When registering twice on one registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the duplicate registration should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording HTTP requests", func() {
			m.RecordHTTPRequest("add", "GET", "200")
			m.RecordHTTPRequest("add", "GET", "200")
			m.RecordHTTPRequestDuration("add", "GET", "200", 1.5)

			Convey("Then the counter should reflect them", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("add", "GET", "200")), ShouldEqual, 2)
			})
		})

		Convey("When recording errors and rejections", func() {
			m.RecordErrorByEndpoint("protected_data", "GET", "client_error")
			m.RecordAPIKeyRejection()
			m.RecordNaNResult("cube")

			Convey("Then each counter should be incremented", func() {
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("protected_data", "GET", "client_error")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.apiKeyRejections), ShouldEqual, 1)
				So(testutil.ToFloat64(m.nanResults.WithLabelValues("cube")), ShouldEqual, 1)
			})
		})

		Convey("When updating gauges", func() {
			m.AddInFlight(2)
			m.AddInFlight(-1)
			m.UpdateSystemGoroutineCount(7)
			m.UpdateSystemMemoryUsage(1024)

			Convey("Then the gauges should hold the latest values", func() {
				So(testutil.ToFloat64(m.httpInFlight), ShouldEqual, 1)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 7)
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1024)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then helpers should not panic", func() {
			So(func() {
				RecordHTTPRequest("root", "GET", "200")
				RecordHTTPRequestDuration("root", "GET", "200", 0.2)
				AddInFlight(1)
				AddInFlight(-1)
				RecordErrorByEndpoint("root", "GET", "not_found")
				RecordAPIKeyRejection()
				RecordNaNResult("add")
				UpdateSystemMemoryUsage(1)
				UpdateSystemGoroutineCount(1)
				RecordSystemGCPauseTime(0.1)
			}, ShouldNotPanic)
		})

		Convey("And the registry should expose the families", func() {
			RecordHTTPRequest("root", "GET", "200")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "featurelab_http_requests_total")
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured global manager", t, func() {
		Configure(
			WithNamespace("lab"),
			WithSubsystem("api"),
			WithConstLabels(map[string]string{"env": "test"}),
		)
		defer Configure()

		RecordHTTPRequest("root", "GET", "200")

		Convey("Then families use the configured names on a fresh registry", func() {
			n, err := testutil.GatherAndCount(GetRegistry(), "lab_api_requests_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			n, err = testutil.GatherAndCount(GetRegistry(), "featurelab_http_requests_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})

		Convey("When configured again with no options", func() {
			Configure()
			RecordHTTPRequest("root", "GET", "200")

			Convey("Then the default names come back", func() {
				n, err := testutil.GatherAndCount(GetRegistry(), "featurelab_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}
