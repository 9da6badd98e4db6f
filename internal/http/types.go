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

type Server struct {
	Store          league.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// weekResponse wraps a ranking with the week it was computed for.
type weekResponse[T any] struct {
	Week int `json:"week"`
	Data T   `json:"data"`
}
