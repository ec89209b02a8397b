package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_enqueued_total",
			Help: "Total number of leads placed on the intake queue",
		},
		[]string{"source"},
	)

	interviewsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_interviews_total",
			Help: "Total number of finished lead interviews by resulting status",
		},
		[]string{"status"},
	)

	interviewErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_interview_errors_total",
			Help: "Total number of interviews that ended in an error",
		},
	)

	followUpsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_follow_ups_sent_total",
			Help: "Total number of follow-up reminders sent",
		},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lead_queue_depth",
			Help: "Number of leads waiting to be interviewed",
		},
	)
)

func RecordLeadEnqueued(source string) {
	leadsEnqueued.WithLabelValues(source).Inc()
}

func RecordInterview(status string) {
	interviewsCompleted.WithLabelValues(status).Inc()
}

func RecordInterviewError() {
	interviewErrors.Inc()
}

func RecordFollowUp() {
	followUpsSent.Inc()
}

func SetQueueDepth(n int) {
	queueDepth.Set(float64(n))
}
