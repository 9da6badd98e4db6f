package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PollsImported         prometheus.Counter
	PicksParsed           prometheus.Counter
	PollLinesSkipped      prometheus.Counter
	ResultsRecorded       prometheus.Counter
	Recalculations        prometheus.Counter
	RecalculationDuration prometheus.Histogram
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
