// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the Prometheus collectors for the service. A nil or
// disabled Manager ignores every Record call.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Rating metrics
	votes          *prometheus.CounterVec
	recordsCreated prometheus.Counter
	voteErrors     *prometheus.CounterVec

	// Collaborator metrics
	lookupFailures *prometheus.CounterVec
	searchCache    *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a manager with its own registry, which also carries
// the Go runtime and process collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rate_anything",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.votes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_total",
		Help:      "Votes applied, by score",
	}, []string{"score"})

	m.recordsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_created_total",
		Help:      "Items that received their first vote",
	})

	m.voteErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vote_errors_total",
		Help:      "Rejected or failed votes, by reason",
	}, []string{"reason"})

	m.lookupFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "description_lookup_failures_total",
		Help:      "Vote-time description lookups that returned no description",
	}, []string{"reason"})

	m.searchCache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_cache_requests_total",
		Help:      "Search cache lookups, by result",
	}, []string{"result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

func (m *Manager) active() bool {
	return m != nil && m.enabled
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool {
	return m.active()
}

// RecordVote counts an applied vote. created marks the item's first vote.
func (m *Manager) RecordVote(score int, created bool) {
	if !m.active() {
		return
	}
	m.votes.WithLabelValues(strconv.Itoa(score)).Inc()
	if created {
		m.recordsCreated.Inc()
	}
}

// RecordVoteError counts a vote that was not applied. reason is one of
// "invalid" or "storage".
func (m *Manager) RecordVoteError(reason string) {
	if !m.active() {
		return
	}
	m.voteErrors.WithLabelValues(reason).Inc()
}

// RecordLookupFailure counts a description lookup that fell back to NULL.
// reason is "error" or "not_found".
func (m *Manager) RecordLookupFailure(reason string) {
	if !m.active() {
		return
	}
	m.lookupFailures.WithLabelValues(reason).Inc()
}

// RecordSearchCache implements search.Recorder.
func (m *Manager) RecordSearchCache(hit bool) {
	if !m.active() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.searchCache.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records one completed request.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, duration time.Duration) {
	if !m.active() {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
