package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FinalizeMetrics records cart finalization outcomes.
type FinalizeMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	items    prometheus.Histogram
}

// NewFinalizeMetrics registers the finalize metrics on the provided registerer.
func NewFinalizeMetrics(reg prometheus.Registerer) *FinalizeMetrics {
	if reg == nil {
		return &FinalizeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_finalize_duration_seconds",
		Help:    "Duration of cart finalization in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_finalize_success",
		Help: "Carts converted into orders.",
	}, []string{"kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_finalize_failure",
		Help: "Failed cart finalizations by error code.",
	}, []string{"code"})
	items := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_finalize_items",
		Help:    "Line items per finalized cart.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
	reg.MustRegister(duration, success, failure, items)
	return &FinalizeMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		items:    items,
	}
}

// ObserveDuration records how long a finalize of the given order kind took.
func (m *FinalizeMetrics) ObserveDuration(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncSuccess counts a committed finalize and its item count.
func (m *FinalizeMetrics) IncSuccess(kind string, items int) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(kind)).Inc()
	m.items.Observe(float64(items))
}

// IncFailure counts a rolled back finalize by error code.
func (m *FinalizeMetrics) IncFailure(code string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
