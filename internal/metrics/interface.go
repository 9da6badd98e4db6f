package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPollsImported()
	AddPicksParsed(n int)
	AddPollLinesSkipped(n int)
	IncResultsRecorded()
	IncRecalculations()
	ObserveRecalculationDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
