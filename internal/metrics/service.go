package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PollsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_polls_imported_total",
			Help: "The total number of poll texts imported.",
		}),
		PicksParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_picks_parsed_total",
			Help: "The total number of picks recognised in imported polls.",
		}),
		PollLinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_poll_lines_skipped_total",
			Help: "The total number of poll lines that could not be placed.",
		}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_results_recorded_total",
			Help: "The total number of game results recorded.",
		}),
		Recalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_score_recalculations_total",
			Help: "The total number of weekly score recalculations.",
		}),
		RecalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pickem_score_recalculation_duration_seconds",
			Help:    "The duration of a weekly score recalculation.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickem_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PollsImported,
		s.PicksParsed,
		s.PollLinesSkipped,
		s.ResultsRecorded,
		s.Recalculations,
		s.RecalculationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPollsImported() {
	s.PollsImported.Inc()
}

func (s *Service) AddPicksParsed(n int) {
	s.PicksParsed.Add(float64(n))
}

func (s *Service) AddPollLinesSkipped(n int) {
	s.PollLinesSkipped.Add(float64(n))
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncRecalculations() {
	s.Recalculations.Inc()
}

func (s *Service) ObserveRecalculationDuration(seconds float64) {
	s.RecalculationDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
