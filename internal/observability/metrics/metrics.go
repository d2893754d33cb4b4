package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead submission workflow.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	intakeLatency    *prometheus.HistogramVec
	notifyTotal      *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Total submission attempts by outcome",
		}, []string{"outcome"}),
		intakeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadrelay",
			Subsystem: "intake",
			Name:      "latency_seconds",
			Help:      "Latency of intake endpoint round trips",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "notify",
			Name:      "total",
			Help:      "Total owner notification emails by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.intakeLatency, m.notifyTotal)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveIntakeLatency(mode string, seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.WithLabelValues(mode).Observe(seconds)
}

func (m *LeadMetrics) ObserveNotify(status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}
