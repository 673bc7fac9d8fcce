package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics records outbound SMS fan-out outcomes.
type DispatchMetrics struct {
	duration *prometheus.HistogramVec
	sent     *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewDispatchMetrics registers the dispatch metrics on the provided registerer.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return &DispatchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sms_fanout_duration_seconds",
		Help:    "Duration of SMS fan-out batches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_sent_total",
		Help: "Outbound SMS messages delivered to the provider.",
	}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_failed_total",
		Help: "Outbound SMS messages the provider rejected or timed out.",
	}, []string{"kind"})
	reg.MustRegister(duration, sent, failed)
	return &DispatchMetrics{
		duration: duration,
		sent:     sent,
		failed:   failed,
	}
}

// ObserveFanout records the duration of one fan-out batch.
func (d *DispatchMetrics) ObserveFanout(kind string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncSent increments the delivered counter for the given request kind.
func (d *DispatchMetrics) IncSent(kind string) {
	if d == nil || d.sent == nil {
		return
	}
	d.sent.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailed increments the failure counter for the given request kind.
func (d *DispatchMetrics) IncFailed(kind string) {
	if d == nil || d.failed == nil {
		return
	}
	d.failed.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
