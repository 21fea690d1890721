package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSubmissionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubmissionMetrics(reg)
	m.ObserveSubmission("succeeded")
	m.ObserveSubmission("partial")
	m.ObserveStageLatency("token_exchange", 0.1)
}

func TestSubmissionMetricsNilSafe(t *testing.T) {
	var m *SubmissionMetrics
	m.ObserveSubmission("succeeded")
	m.ObserveStageLatency("sheet_append", 0.2)
}
