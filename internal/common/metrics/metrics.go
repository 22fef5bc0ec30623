package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Prometheus Metrics
// ============================================================

const namespace = "floorplan_studio"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	fieldEdits         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	generations        *prometheus.CounterVec
	downloads          prometheus.Counter
	sessions           prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fieldEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_edits_total",
			Help:      "Form field edits, split by whether the value was accepted.",
		}, []string{"field", "accepted"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Submits refused by validation, by notification title.",
		}, []string{"reason"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Finished floor plan generations, by outcome.",
		}, []string{"outcome"}),
		downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Floor plan downloads served.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live studio sessions.",
		}),
	}

	reg.MustRegister(
		m.fieldEdits,
		m.validationFailures,
		m.generations,
		m.downloads,
		m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) FieldEdit(field string, accepted bool) {
	if m == nil {
		return
	}
	m.fieldEdits.WithLabelValues(field, strconv.FormatBool(accepted)).Inc()
}

func (m *Metrics) ValidationFailed(reason string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) Generated(ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.generations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Downloaded() {
	if m == nil {
		return
	}
	m.downloads.Inc()
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
