package league

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	SyncParticipants(names []string) error
	GetParticipants() ([]Participant, error)
	ReplaceWeek(week int, games []Game, picks []Pick) error
	GetGames(week int) ([]Game, error)
	GetGame(gameID string) (*Game, error)
	SetWinner(gameID string, winner Side) error
	GetPicks(week int) ([]Pick, error)
	ReplaceWeeklyScores(week int, scores []WeeklyScore) error
	GetWeeklyScores() ([]WeeklyScore, error)
	ReplaceCumulativeScores(week int, scores []CumulativeScore) error
	GetCumulativeScores(week int) ([]CumulativeScore, error)
	LatestWeek() (int, error)
	ClearWeek(week int) error
}
