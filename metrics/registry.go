// Package metrics exports demo activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/resiliencere/leadsync/chaos"
)

// Registry holds all metrics for the application
type Registry struct {
	// Connection metrics
	StatusTransitionsTotal *prometheus.CounterVec
	ConnectionStatus       *prometheus.GaugeVec
	ServerRegion           *prometheus.GaugeVec

	// Lead metrics
	LocalQueueDepth     prometheus.Gauge
	LeadsSubmittedTotal *prometheus.CounterVec
	LeadsSyncedTotal    prometheus.Counter
	SyncRunsTotal       *prometheus.CounterVec

	// Property metrics
	PropertyFetchTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var _ chaos.Recorder = (*Registry)(nil)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initConnectionMetrics()
	r.initLeadMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initConnectionMetrics() {
	r.StatusTransitionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsync_status_transitions_total",
			Help: "Total number of simulated connection status changes",
		},
		[]string{"status"},
	)

	r.ConnectionStatus = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leadsync_connection_status",
			Help: "Current simulated connection status (1 = active)",
		},
		[]string{"status"},
	)

	r.ServerRegion = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leadsync_server_region",
			Help: "Region currently serving traffic (1 = active)",
		},
		[]string{"region"},
	)
}

func (r *Registry) initLeadMetrics() {
	r.LocalQueueDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "leadsync_local_queue_depth",
			Help: "Number of leads waiting in the local queue",
		},
	)

	r.LeadsSubmittedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsync_leads_submitted_total",
			Help: "Total number of submitted leads by route (direct or queued)",
		},
		[]string{"route"},
	)

	r.LeadsSyncedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "leadsync_leads_synced_total",
			Help: "Total number of queued leads flushed to the CRM",
		},
	)

	r.SyncRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsync_sync_runs_total",
			Help: "Total number of sync trigger runs by outcome",
		},
		[]string{"outcome"},
	)

	r.PropertyFetchTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsync_property_fetch_total",
			Help: "Total number of property fetches by outcome",
		},
		[]string{"outcome"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsync_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadsync_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
}

// ObserveStatus counts a transition and flips the one-hot status and region gauges.
func (r *Registry) ObserveStatus(status chaos.ConnectionStatus, region chaos.ServerRegion) {
	r.StatusTransitionsTotal.WithLabelValues(status.String()).Inc()

	for _, s := range chaos.Statuses() {
		r.ConnectionStatus.WithLabelValues(s.String()).Set(0)
		r.ServerRegion.WithLabelValues(chaos.RegionFor(s).String()).Set(0)
	}
	r.ConnectionStatus.WithLabelValues(status.String()).Set(1)
	r.ServerRegion.WithLabelValues(region.String()).Set(1)
}

func (r *Registry) ObserveQueueDepth(depth int) {
	r.LocalQueueDepth.Set(float64(depth))
}

func (r *Registry) ObserveLeadSubmitted(queued bool) {
	route := "direct"
	if queued {
		route = "queued"
	}
	r.LeadsSubmittedTotal.WithLabelValues(route).Inc()
}

func (r *Registry) ObserveSync(outcome chaos.SyncOutcome, synced int) {
	r.SyncRunsTotal.WithLabelValues(string(outcome)).Inc()
	if synced > 0 {
		r.LeadsSyncedTotal.Add(float64(synced))
	}
}

func (r *Registry) ObserveFetch(outcome chaos.FetchOutcome) {
	r.PropertyFetchTotal.WithLabelValues(string(outcome)).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
