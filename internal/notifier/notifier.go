package notifier

import (
	"github.com/mauv0809/tribble-pickem/internal/poll"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a poll has been imported
	SendPollSummary(summary PollSummary, dryRun bool) (string, error)
	// After a week has been scored
	SendStandings(report StandingsReport, dryRun bool) (string, error)

	// For formatting responses for slash commands
	FormatStandingsResponse(title string, week int, standings []scoring.Standing) (any, error)
	FormatNoStandingsResponse(week int) (any, error)
}

// PollSummary describes an imported poll.
type PollSummary struct {
	Week            int
	Games           int
	Picks           int
	ExplicitChoices int
	Skipped         []poll.SkippedLine
}

// StandingsReport is posted once a week's results have been scored.
type StandingsReport struct {
	Week       int
	Weekly     []scoring.Standing
	Cumulative []scoring.Standing
	Unmatched  int
}
