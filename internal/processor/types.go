package processor

import (
	"errors"

	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/poll"
	"github.com/mauv0809/tribble-pickem/internal/pubsub"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
)

var (
	ErrInvalidWeek           = errors.New("week must be a positive number")
	ErrEmptyPoll             = errors.New("poll contains no games")
	ErrNoGames               = errors.New("no games have been imported")
	ErrResultAlreadyRecorded = errors.New("a different result is already recorded for this game")
)

// Processor handles the business logic of the league: importing polls,
// recording results and keeping the score tables current.
type Processor struct {
	store    Store
	roster   Roster
	parser   *poll.Parser
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}

// Import is what ImportPoll stored for a week.
type Import struct {
	Week   int           `json:"week"`
	Games  []league.Game `json:"games"`
	Picks  []league.Pick `json:"picks"`
	Report poll.Report   `json:"report"`
	// Unknown lists participants with picks who are not on the roster. Their
	// picks are stored but they never appear in the standings.
	Unknown []string `json:"unknown,omitempty"`
}

// WeekReport is the outcome of scoring one week.
type WeekReport struct {
	Week       int                `json:"week"`
	Games      int                `json:"games"`
	Resolved   int                `json:"resolved"`
	Weekly     []scoring.Standing `json:"weekly"`
	Cumulative []scoring.Standing `json:"cumulative"`
	Unmatched  []league.Pick      `json:"unmatched,omitempty"`
}
