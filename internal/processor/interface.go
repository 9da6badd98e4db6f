package processor

import (
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	ReplaceWeek(week int, games []league.Game, picks []league.Pick) error
	GetGames(week int) ([]league.Game, error)
	GetGame(gameID string) (*league.Game, error)
	SetWinner(gameID string, winner league.Side) error
	GetPicks(week int) ([]league.Pick, error)
	ReplaceWeeklyScores(week int, scores []league.WeeklyScore) error
	GetWeeklyScores() ([]league.WeeklyScore, error)
	ReplaceCumulativeScores(week int, scores []league.CumulativeScore) error
	GetCumulativeScores(week int) ([]league.CumulativeScore, error)
	LatestWeek() (int, error)
	ClearWeek(week int) error
}

// Roster is the participant registry the processor canonicalises names against.
type Roster interface {
	Names() []string
	Resolve(name string) (string, bool)
	Canonicalize(name string) string
	IsCanonical(name string) bool
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
