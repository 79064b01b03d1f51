// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager()

			Convey("Then it has its own registry and is enabled", func() {
				So(m, ShouldNotBeNil)
				So(m.registry, ShouldNotBeNil)
				So(m.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)
			m.RecordVote(3, false)

			Convey("Then metric names use the namespace and subsystem", func() {
				So(m.registry, ShouldEqual, registry)
				n, err := testutil.GatherAndCount(registry, "test_ns_test_sub_votes_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When two managers are created", func() {
			Convey("Then they do not collide on registration", func() {
				So(func() {
					NewManager()
					NewManager()
				}, ShouldNotPanic)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given an enabled manager", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()))

		Convey("When votes are recorded", func() {
			m.RecordVote(8, true)
			m.RecordVote(8, false)
			m.RecordVote(4, false)

			Convey("Then they are counted by score", func() {
				So(testutil.ToFloat64(m.votes.WithLabelValues("8")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.votes.WithLabelValues("4")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.recordsCreated), ShouldEqual, 1)
			})
		})

		Convey("When failures are recorded", func() {
			m.RecordVoteError("invalid")
			m.RecordVoteError("storage")
			m.RecordVoteError("invalid")
			m.RecordLookupFailure("error")

			Convey("Then they are counted by reason", func() {
				So(testutil.ToFloat64(m.voteErrors.WithLabelValues("invalid")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.voteErrors.WithLabelValues("storage")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.lookupFailures.WithLabelValues("error")), ShouldEqual, 1)
			})
		})

		Convey("When search cache results are recorded", func() {
			m.RecordSearchCache(true)
			m.RecordSearchCache(false)
			m.RecordSearchCache(false)

			Convey("Then hits and misses are separate series", func() {
				So(testutil.ToFloat64(m.searchCache.WithLabelValues("hit")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.searchCache.WithLabelValues("miss")), ShouldEqual, 2)
			})
		})

		Convey("When an HTTP request is recorded", func() {
			m.RecordHTTPRequest("/api/rate/{slug}", "POST", 200, 15*time.Millisecond)

			Convey("Then the request counter and histogram are updated", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/rate/{slug}", "POST", "200")), ShouldEqual, 1)
				n, err := testutil.GatherAndCount(m.registry, "rate_anything_api_http_request_duration_seconds")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestDisabledManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false), WithRegistry(prometheus.NewRegistry()))

		Convey("When recording", func() {
			m.RecordVote(5, true)
			m.RecordHTTPRequest("/", "GET", 200, time.Millisecond)

			Convey("Then nothing is counted", func() {
				So(m.Enabled(), ShouldBeFalse)
				So(testutil.ToFloat64(m.recordsCreated), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then every record call is a no-op", func() {
			So(func() {
				m.RecordVote(5, true)
				m.RecordVoteError("storage")
				m.RecordLookupFailure("error")
				m.RecordSearchCache(true)
				m.RecordHTTPRequest("/", "GET", 200, time.Millisecond)
			}, ShouldNotPanic)
			So(m.Enabled(), ShouldBeFalse)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given a manager with recorded votes", t, func() {
		m := NewManager()
		m.RecordVote(10, true)

		Convey("When /metrics is scraped", func() {
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			Convey("Then the exposition includes service and runtime metrics", func() {
				So(rec.Code, ShouldEqual, 200)
				So(string(body), ShouldContainSubstring, `rate_anything_api_votes_total{score="10"} 1`)
				So(string(body), ShouldContainSubstring, "go_goroutines")
			})
		})
	})
}
