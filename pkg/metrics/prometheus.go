// Package metrics provides Prometheus metrics for the Claws and Paws core service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns every Prometheus metric exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ledger metrics
	postsCreated    prometheus.Counter
	likesApplied    prometheus.Counter
	likesRolledBack prometheus.Counter
	postsTotal      prometheus.Gauge

	// Vote metrics
	votesRecorded prometheus.Counter
	votesRejected prometheus.Counter

	// Winner archive metrics
	winnersArchived prometheus.Counter
	winnersTotal    prometheus.Gauge

	// Store metrics
	storeOps       *prometheus.CounterVec
	storeOpErrors  *prometheus.CounterVec
	storeOpLatency prometheus.Histogram

	// Collaborator metrics (image provider, remote mirror, broker)
	collaboratorFailures *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "paws",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.postsCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "posts_created_total",
		Help:      "Total number of posts added to the ledger.",
	})
	m.likesApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "likes_applied_total",
		Help:      "Total number of like increments applied.",
	})
	m.likesRolledBack = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "likes_rolled_back_total",
		Help:      "Like increments reverted after a failed mirror call.",
	})
	m.postsTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "posts_total",
		Help:      "Current number of posts in the ledger.",
	})

	m.votesRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_recorded_total",
		Help:      "Daily votes recorded.",
	})
	m.votesRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_rejected_total",
		Help:      "Votes rejected because the user already voted today.",
	})

	m.winnersArchived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "winners_archived_total",
		Help:      "Champion entries appended to the winners log.",
	})
	m.winnersTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "winners_total",
		Help:      "Current number of archived winners.",
	})

	m.storeOps = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_ops_total",
		Help:      "Key-value store operations by kind.",
	}, []string{"op"})
	m.storeOpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_errors_total",
		Help:      "Key-value store operation failures by kind.",
	}, []string{"op"})
	m.storeOpLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_op_duration_ms",
		Help:      "Key-value store operation latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.collaboratorFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collaborator_failures_total",
		Help:      "Swallowed failures from external collaborators.",
	}, []string{"collaborator"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint, method and error type.",
	}, []string{"endpoint", "method", "error_type"})
	m.errorsByType = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity.",
	}, []string{"error_type", "severity"})
	m.errorLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_duration_ms",
		Help:      "Latency of failed operations in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers delegating to the global manager.

// RecordPostCreated increments the created-posts counter.
func RecordPostCreated() {
	globalManager.postsCreated.Inc()
}

// RecordLikeApplied increments the applied-likes counter.
func RecordLikeApplied() {
	globalManager.likesApplied.Inc()
}

// RecordLikeRolledBack increments the rolled-back-likes counter.
func RecordLikeRolledBack() {
	globalManager.likesRolledBack.Inc()
}

// UpdatePostsTotal sets the current ledger size.
func UpdatePostsTotal(count int) {
	globalManager.postsTotal.Set(float64(count))
}

// RecordVoteRecorded increments the recorded-votes counter.
func RecordVoteRecorded() {
	globalManager.votesRecorded.Inc()
}

// RecordVoteRejected increments the rejected-votes counter.
func RecordVoteRejected() {
	globalManager.votesRejected.Inc()
}

// RecordWinnerArchived increments the archived-winners counter.
func RecordWinnerArchived() {
	globalManager.winnersArchived.Inc()
}

// UpdateWinnersTotal sets the current archive size.
func UpdateWinnersTotal(count int) {
	globalManager.winnersTotal.Set(float64(count))
}

// RecordStoreOp counts a key-value store operation.
func RecordStoreOp(op string) {
	globalManager.storeOps.WithLabelValues(op).Inc()
}

// RecordStoreOpError counts a failed key-value store operation.
func RecordStoreOpError(op string) {
	globalManager.storeOpErrors.WithLabelValues(op).Inc()
}

// RecordStoreOpLatency observes a store operation latency.
func RecordStoreOpLatency(latencyMs float64) {
	globalManager.storeOpLatency.Observe(latencyMs)
}

// RecordCollaboratorFailure counts a swallowed collaborator failure.
func RecordCollaboratorFailure(collaborator string) {
	globalManager.collaboratorFailures.WithLabelValues(collaborator).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency observes the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
