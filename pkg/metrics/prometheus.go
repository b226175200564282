// Package metrics provides Prometheus metrics for the playcard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the playcard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ledger metrics
	gamesCreated           prometheus.Counter
	roundsRecorded         prometheus.Counter
	pointsApplied          prometheus.Counter
	unknownPlayerEntries   prometheus.Counter
	currentResets          prometheus.Counter
	validationFailures     *prometheus.CounterVec
	gamesTotal             prometheus.Gauge
	currentGamePlayers     prometheus.Gauge
	ledgerOperationLatency *prometheus.HistogramVec

	// Event pipeline metrics
	eventsEnqueued      prometheus.Counter
	eventsDropped       *prometheus.CounterVec
	eventsPublished     prometheus.Counter
	eventPublishErrors  prometheus.Counter
	eventQueueSize      prometheus.Gauge
	eventQueueCapacity  prometheus.Gauge
	eventPublishLatency prometheus.Histogram
	dispatcherWorkers   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpPanics          prometheus.Counter

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "playcard",
		subsystem:        "ledger",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval returns how often periodic gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // metric declarations
	auto := promauto.With(m.registry)

	m.gamesCreated = m.counter("games_created_total", "Total number of games created")
	m.roundsRecorded = m.counter("rounds_recorded_total", "Total number of rounds recorded")
	m.pointsApplied = m.counter("point_entries_applied_total", "Total number of round entries applied to a known player")
	m.unknownPlayerEntries = m.counter("unknown_player_entries_total", "Total number of round entries ignored because the player id is unknown")
	m.currentResets = m.counter("current_resets_total", "Total number of current game resets that cleared a game")
	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validation_failures_total",
		Help:        "Total number of rejected ledger operations by operation",
		ConstLabels: m.customLabels,
	}, []string{"operation"})
	m.gamesTotal = m.gauge("games", "Number of games held in memory")
	m.currentGamePlayers = m.gauge("current_game_players", "Number of players in the current game, 0 when none")
	m.ledgerOperationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "operation_latency_milliseconds",
		Help:        "Ledger operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"operation"})

	m.eventsEnqueued = m.counter("events_enqueued_total", "Total number of ledger events enqueued for publishing")
	m.eventsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_dropped_total",
		Help:        "Total number of ledger events dropped before publishing, by reason",
		ConstLabels: m.customLabels,
	}, []string{"reason"})
	m.eventsPublished = m.counter("events_published_total", "Total number of ledger events published")
	m.eventPublishErrors = m.counter("event_publish_errors_total", "Total number of ledger event publish failures")
	m.eventQueueSize = m.gauge("event_queue_size", "Current number of queued ledger events")
	m.eventQueueCapacity = m.gauge("event_queue_capacity", "Maximum number of queued ledger events")
	m.eventPublishLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "event_publish_latency_milliseconds",
		Help:        "Ledger event publish latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	})
	m.dispatcherWorkers = m.gauge("event_dispatcher_workers", "Number of event dispatcher workers")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpPanics = m.counter("http_panics_total", "Total number of recovered handler panics")

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Total number of errors by component",
		ConstLabels: m.customLabels,
	}, []string{"component", "error_type"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.customLabels,
	})
}

// Ledger metrics.

// RecordGameCreated increments the games created counter.
func RecordGameCreated() {
	if globalManager.enabled {
		globalManager.gamesCreated.Inc()
	}
}

// RecordRoundRecorded increments the rounds recorded counter.
func RecordRoundRecorded() {
	if globalManager.enabled {
		globalManager.roundsRecorded.Inc()
	}
}

// RecordPointEntries records how many round entries were applied and ignored.
func RecordPointEntries(applied, unknown int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pointsApplied.Add(float64(applied))
	globalManager.unknownPlayerEntries.Add(float64(unknown))
}

// RecordCurrentReset increments the current reset counter.
func RecordCurrentReset() {
	if globalManager.enabled {
		globalManager.currentResets.Inc()
	}
}

// RecordValidationFailure increments the validation failure counter for op.
func RecordValidationFailure(operation string) {
	if globalManager.enabled {
		globalManager.validationFailures.WithLabelValues(operation).Inc()
	}
}

// UpdateGamesTotal sets the number of games held in memory.
func UpdateGamesTotal(count int) {
	globalManager.gamesTotal.Set(float64(count))
}

// UpdateCurrentGamePlayers sets the player count of the current game.
func UpdateCurrentGamePlayers(count int) {
	globalManager.currentGamePlayers.Set(float64(count))
}

// RecordLedgerOperationLatency records a ledger operation latency in milliseconds.
func RecordLedgerOperationLatency(operation string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.ledgerOperationLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// Event pipeline metrics.

// RecordEventEnqueued increments the enqueued events counter.
func RecordEventEnqueued() {
	if globalManager.enabled {
		globalManager.eventsEnqueued.Inc()
	}
}

// RecordEventDropped increments the dropped events counter for reason.
func RecordEventDropped(reason string) {
	if globalManager.enabled {
		globalManager.eventsDropped.WithLabelValues(reason).Inc()
	}
}

// RecordEventPublished increments the published events counter and observes latency.
func RecordEventPublished(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.eventsPublished.Inc()
	globalManager.eventPublishLatency.Observe(latencyMs)
}

// RecordEventPublishError increments the publish error counter.
func RecordEventPublishError() {
	if globalManager.enabled {
		globalManager.eventPublishErrors.Inc()
	}
}

// UpdateEventQueueSize sets the current event queue size.
func UpdateEventQueueSize(size int) {
	globalManager.eventQueueSize.Set(float64(size))
}

// UpdateEventQueueCapacity sets the event queue capacity.
func UpdateEventQueueCapacity(capacity int) {
	globalManager.eventQueueCapacity.Set(float64(capacity))
}

// UpdateDispatcherWorkers sets the number of event dispatcher workers.
func UpdateDispatcherWorkers(count int) {
	globalManager.dispatcherWorkers.Set(float64(count))
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPPanic increments the recovered panic counter.
func RecordHTTPPanic() {
	globalManager.httpPanics.Inc()
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
