package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the submission flow.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	stageLatency     *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heartfulmiles",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total trip request submissions by outcome",
		}, []string{"outcome"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "heartfulmiles",
			Subsystem: "leads",
			Name:      "stage_latency_seconds",
			Help:      "Latency of each submission stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.stageLatency)
	return m
}

// ObserveSubmission counts one submission with the given outcome:
// succeeded, partial, auth_failed, or record_failed.
func (m *SubmissionMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveStageLatency(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageLatency.WithLabelValues(stage).Observe(seconds)
}
