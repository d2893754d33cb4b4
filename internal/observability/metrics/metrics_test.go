package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission("accepted")
	m.ObserveSubmission("rejected_validation")
	m.ObserveIntakeLatency("checked", 0.5)
	m.ObserveNotify("sent")
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("accepted")
	m.ObserveIntakeLatency("checked", 0.1)
	m.ObserveNotify("failed")
}
