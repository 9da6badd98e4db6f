package http

import (
	"net/http"

	"github.com/mauv0809/tribble-pickem/internal/config"
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
	"github.com/mauv0809/tribble-pickem/internal/processor"
	"github.com/mauv0809/tribble-pickem/internal/pubsub"
)

func NewServer(store league.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	post := methodMiddleware(http.MethodPost)
	slackAuth := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/participants", Chain(s.ListParticipantsHandler(), paramsMiddleware))
	s.Router.Handle("/games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("/picks", Chain(s.ListPicksHandler(), paramsMiddleware))
	s.Router.Handle("/poll", Chain(s.ImportPollHandler(), paramsMiddleware, post))
	s.Router.Handle("/result", Chain(s.RecordResultHandler(), paramsMiddleware, post))
	s.Router.Handle("/result/clear", Chain(s.ClearResultHandler(), paramsMiddleware, post))
	s.Router.Handle("/recalculate", Chain(s.RecalculateHandler(), paramsMiddleware, post))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/weekly", Chain(s.WeeklyHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearWeekHandler(), paramsMiddleware, post))
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("/slack/command/weekly", Chain(s.WeeklyCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("/pubsub/recalculate-week", Chain(s.RecalculateWeekPushHandler(), paramsMiddleware, post))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
