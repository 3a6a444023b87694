// Package metrics exposes Prometheus counters for launches, backups, history
// pruning and the HTTP API. Each Metrics owns its registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "launchpad"

// Launch kinds.
const (
	LaunchDirect  = "direct"
	LaunchSaved   = "saved"
	LaunchDefault = "default"
	LaunchCustom  = "custom"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	Launches       *prometheus.CounterVec
	BackupsCreated *prometheus.CounterVec
	HistoryPruned  prometheus.Counter
	JobRuns        *prometheus.CounterVec
}

// New creates the metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Launches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "browser_launches_total",
				Help:      "Browser launches by kind and result",
			},
			[]string{"kind", "result"},
		),
		BackupsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backups_created_total",
				Help:      "Backups written, by trigger",
			},
			[]string{"trigger"},
		),
		HistoryPruned: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_pruned_entries_total",
				Help:      "History entries dropped by retention or size limits",
			},
		),
		JobRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_runs_total",
				Help:      "Background job runs by job and result",
			},
			[]string{"job", "result"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}

// RecordHTTPRequest records an API request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLaunch records a browser launch attempt.
func (m *Metrics) RecordLaunch(kind string, err error) {
	if m == nil {
		return
	}
	m.Launches.WithLabelValues(kind, result(err)).Inc()
}

// RecordBackup records a written backup.
func (m *Metrics) RecordBackup(trigger string) {
	if m == nil {
		return
	}
	m.BackupsCreated.WithLabelValues(trigger).Inc()
}

// AddHistoryPruned adds n dropped history entries.
func (m *Metrics) AddHistoryPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.HistoryPruned.Add(float64(n))
}

// RecordJob records a scheduler run.
func (m *Metrics) RecordJob(job string, err error) {
	if m == nil {
		return
	}
	m.JobRuns.WithLabelValues(job, result(err)).Inc()
}
