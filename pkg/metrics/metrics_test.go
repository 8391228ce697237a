package metrics_test

import (
	"testing"
	"time"

	"github.com/clawsandpaws/pawsd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metric manager options", t, func() {
		Convey("When creating a manager with a private registry", func() {
			reg := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(reg),
				metrics.WithNamespace("test"),
				metrics.WithSubsystem("unit"),
				metrics.WithHistogramBuckets([]float64{1, 5, 10}),
				metrics.WithRefreshInterval(time.Second),
				metrics.WithMetricsEnabled(true),
			)

			Convey("Then the manager should be created", func() {
				So(m, ShouldNotBeNil)
			})
		})

		Convey("When creating two managers with separate registries", func() {
			m1 := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
			m2 := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then registration should not collide", func() {
				So(m1, ShouldNotBeNil)
				So(m2, ShouldNotBeNil)
			})
		})
	})
}

func TestPackageLevelHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain events", func() {
			Convey("Then the helpers should not panic", func() {
				So(func() {
					metrics.RecordPostCreated()
					metrics.RecordLikeApplied()
					metrics.RecordLikeRolledBack()
					metrics.UpdatePostsTotal(3)
					metrics.RecordVoteRecorded()
					metrics.RecordVoteRejected()
					metrics.RecordWinnerArchived()
					metrics.UpdateWinnersTotal(1)
					metrics.RecordStoreOp("get")
					metrics.RecordStoreOpError("set")
					metrics.RecordStoreOpLatency(1.2)
					metrics.RecordCollaboratorFailure("images")
					metrics.RecordHTTPRequest("feed", "GET", "200")
					metrics.RecordHTTPRequestDuration("feed", "GET", "200", 4.2)
					metrics.RecordErrorByEndpoint("vote", "POST", "client_error")
					metrics.RecordErrorByType("client_error", "medium")
					metrics.RecordErrorLatency("http", "client_error", 2.0)
					metrics.UpdateSystemMemoryUsage(1 << 20)
					metrics.UpdateSystemGoroutineCount(12)
					metrics.RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should be gatherable", func() {
				reg := metrics.GetRegistry()
				So(reg, ShouldNotBeNil)
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
