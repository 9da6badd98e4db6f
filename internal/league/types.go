package league

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidSide  = errors.New("winner must be home, away or one of the game's teams")
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Side identifies one half of a game. The zero value means the game has no
// recorded result yet.
type Side string

const (
	SideUnresolved Side = ""
	SideHome       Side = "home"
	SideAway       Side = "away"
)

// Valid reports whether s names a side of a game.
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// ParseSide accepts the literal home/away tokens, case-insensitively.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SideHome):
		return SideHome, nil
	case string(SideAway):
		return SideAway, nil
	}
	return SideUnresolved, ErrInvalidSide
}

// Participant is a roster entry as persisted.
type Participant struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Game is a single matchup within a week.
type Game struct {
	ID       string `json:"id" msgpack:"id"`
	Week     int    `json:"week" msgpack:"week"`
	HomeTeam string `json:"home_team" msgpack:"home_team"`
	AwayTeam string `json:"away_team" msgpack:"away_team"`
	Winner   Side   `json:"winner,omitempty" msgpack:"winner"`
}

// HasResult reports whether a winner has been recorded.
func (g Game) HasResult() bool {
	return g.Winner.Valid()
}

// Team returns the team name playing on the given side.
func (g Game) Team(side Side) string {
	switch side {
	case SideHome:
		return g.HomeTeam
	case SideAway:
		return g.AwayTeam
	}
	return ""
}

// WinningTeam returns the name of the winning team, or "" while unresolved.
func (g Game) WinningTeam() string {
	return g.Team(g.Winner)
}

// SideFor converts a choice, given either as a home/away token or as one of
// the game's team names, into the side it designates.
func (g Game) SideFor(choice string) (Side, bool) {
	if side, err := ParseSide(choice); err == nil {
		return side, true
	}
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return SideUnresolved, false
	}
	if g.HomeTeam != "" && strings.EqualFold(choice, g.HomeTeam) {
		return SideHome, true
	}
	if g.AwayTeam != "" && strings.EqualFold(choice, g.AwayTeam) {
		return SideAway, true
	}
	return SideUnresolved, false
}

// Pick is one participant's choice for one game. Choice keeps the text the
// pick was entered with; Side is the canonical form used for scoring.
type Pick struct {
	ID          string `json:"id"`
	Participant string `json:"participant"`
	Week        int    `json:"week"`
	GameID      string `json:"game_id,omitempty"`
	Choice      string `json:"choice"`
	Side        Side   `json:"side,omitempty"`
}

// WeeklyScore is the number of correct picks a participant made in a week.
type WeeklyScore struct {
	Participant string `json:"participant" msgpack:"participant"`
	Week        int    `json:"week" msgpack:"week"`
	Score       int    `json:"score" msgpack:"score"`
}

// CumulativeScore is the sum of a participant's weekly scores up to a week.
type CumulativeScore struct {
	Participant string `json:"participant" msgpack:"participant"`
	Score       int    `json:"score" msgpack:"score"`
}
