package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the application's own registry, served at /api/metrics
var Registry = prometheus.NewRegistry()

func newCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	Registry.MustRegister(c)
	return c
}

func newHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	Registry.MustRegister(h)
	return h
}

func newGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(opts, labels)
	Registry.MustRegister(g)
	return g
}

func newGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	Registry.MustRegister(g)
	return g
}

func newCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	Registry.MustRegister(c)
	return c
}

var (
	// Custom histogram buckets for API response times from milliseconds to tens of seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = newHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = newCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = newGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics (MongoDB)
	MongoOperationDuration = newHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = newCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = newCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	Signups = newCounterVec(
		prometheus.CounterOpts{
			Name: "mentorwise_signups_total",
			Help: "Total number of signup attempts",
		},
		[]string{"status", "provider"},
	)

	Logins = newCounterVec(
		prometheus.CounterOpts{
			Name: "mentorwise_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	GoogleAuthRequests = newCounterVec(
		prometheus.CounterOpts{
			Name: "mentorwise_google_auth_total",
			Help: "Total number of Google token verifications",
		},
		[]string{"status"},
	)

	PasswordResetRequests = newCounter(
		prometheus.CounterOpts{
			Name: "mentorwise_password_reset_requests_total",
			Help: "Total number of password reset requests",
		},
	)

	PasswordResetCompletions = newCounter(
		prometheus.CounterOpts{
			Name: "mentorwise_password_reset_completions_total",
			Help: "Total number of password reset completions",
		},
	)

	MentorSearches = newCounter(
		prometheus.CounterOpts{
			Name: "mentorwise_mentor_searches_total",
			Help: "Total number of mentor searches",
		},
	)

	ProfileUpdates = newCounter(
		prometheus.CounterOpts{
			Name: "mentorwise_profile_updates_total",
			Help: "Total number of mentor profile updates",
		},
	)

	ConnectionRequestsSent = newCounterVec(
		prometheus.CounterOpts{
			Name: "mentorwise_connection_requests_sent_total",
			Help: "Total number of connection request send attempts",
		},
		[]string{"status"},
	)

	ConnectionStatusUpdates = newCounterVec(
		prometheus.CounterOpts{
			Name: "mentorwise_connection_status_updates_total",
			Help: "Total number of connection request status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	// Infrastructure Metrics
	GoRoutines = newGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = newGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
