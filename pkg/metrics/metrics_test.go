package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "unit")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 10})
			})

			Convey("And the collectors should be registered", func() {
				m.activeSessions.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_active_sessions"], ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "nexera")
				So(m.subsystem, ShouldEqual, "scene")
				So(len(m.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording pipeline activity", func() {
			before := testutil.ToFloat64(globalManager.classifications.WithLabelValues(PipelineAvatar, "wave"))
			RecordClassification(PipelineAvatar, "wave")
			RecordSubmission(PipelineAsset, OutcomeBusy)
			RecordProcessingDelay(PipelineAsset, 800)
			RecordPoseEvaluation("walk")

			Convey("Then counters should move", func() {
				So(testutil.ToFloat64(globalManager.classifications.WithLabelValues(PipelineAvatar, "wave")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.submissions.WithLabelValues(PipelineAsset, OutcomeBusy)), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.poseEvaluations.WithLabelValues("walk")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When updating session gauges", func() {
			UpdateActiveSessions(5)
			RecordSessionCreated()
			RecordSessionExpired()

			Convey("Then the gauge should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.activeSessions), ShouldEqual, 5)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("pose", "GET", "200")
				RecordHTTPRequestDuration("pose", "GET", "200", 1.5)
				RecordErrorByEndpoint("pose", "GET", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
