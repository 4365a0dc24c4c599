// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iwfm_submodel"

// Metrics counts conversions and records on a private registry. A CLI run
// is short-lived, so the registry is exported by writing a textfile for the
// node exporter rather than serving it.
type Metrics struct {
	registry *prometheus.Registry

	Conversions *prometheus.CounterVec   // labels: kind, outcome={written,skipped,error}
	Kept        *prometheus.CounterVec   // labels: kind
	Dropped     *prometheus.CounterVec   // labels: kind
	Zeroed      *prometheus.CounterVec   // labels: kind
	Duration    *prometheus.HistogramVec // labels: kind
}

// NewMetrics creates the collectors and registers them on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Submodel file conversions by file kind and outcome.",
		}, []string{"kind", "outcome"}),
		Kept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "Records retained in submodel files.",
		}, []string{"kind"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Records removed because their key is outside the submodel.",
		}, []string{"kind"}),
		Zeroed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_zeroed_total",
			Help:      "Records kept with a reference to a dropped entity set to 0.",
		}, []string{"kind"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Wall time of a single file conversion.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.Conversions, m.Kept, m.Dropped, m.Zeroed, m.Duration)
	return m
}

// Report records e.
func (m *Metrics) Report(e Event) {
	kind := string(e.Kind)
	switch {
	case e.Err != nil:
		m.Conversions.WithLabelValues(kind, "error").Inc()
		return
	case !e.Written:
		m.Conversions.WithLabelValues(kind, "skipped").Inc()
	default:
		m.Conversions.WithLabelValues(kind, "written").Inc()
	}
	m.Kept.WithLabelValues(kind).Add(float64(e.Kept))
	m.Dropped.WithLabelValues(kind).Add(float64(e.Dropped))
	m.Zeroed.WithLabelValues(kind).Add(float64(e.Zeroed))
	if e.Elapsed > 0 {
		m.Duration.WithLabelValues(kind).Observe(e.Elapsed.Seconds())
	}
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
