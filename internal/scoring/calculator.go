package scoring

import (
	"sort"
	"strings"

	"github.com/mauv0809/tribble-pickem/internal/league"
)

// Result is the outcome of scoring a set of picks against a set of games.
type Result struct {
	// Totals holds one entry for every participant that made a pick.
	Totals map[string]int
	// Unmatched lists picks that could not be tied to a game and side.
	Unmatched []league.Pick
}

type vote struct {
	participant string
	game        int
}

// CalculateScores awards one point per pick that named the winner of its
// game. Games without a result contribute nothing.
func CalculateScores(games []league.Game, picks []league.Pick) map[string]int {
	return Score(games, picks).Totals
}

// Score is CalculateScores with a report of the picks it could not place.
// A pick belongs to the game its GameID names; a pick without one belongs to
// the game (of the same week) whose home or away team it names. Its side is
// taken from Pick.Side, falling back to converting Choice. When a participant
// has several picks for one game the last one counts.
func Score(games []league.Game, picks []league.Pick) Result {
	res := Result{Totals: make(map[string]int, len(picks))}

	byID := make(map[string]int, len(games))
	for i, g := range games {
		if g.ID != "" {
			byID[g.ID] = i
		}
	}

	votes := make(map[vote]league.Side)
	var order []vote
	for _, pick := range picks {
		if _, ok := res.Totals[pick.Participant]; !ok {
			res.Totals[pick.Participant] = 0
		}

		idx, side, ok := place(games, byID, pick)
		if !ok {
			res.Unmatched = append(res.Unmatched, pick)
			continue
		}
		key := vote{participant: pick.Participant, game: idx}
		if _, seen := votes[key]; !seen {
			order = append(order, key)
		}
		votes[key] = side
	}

	for _, key := range order {
		game := games[key.game]
		if game.HasResult() && votes[key] == game.Winner {
			res.Totals[key.participant]++
		}
	}
	return res
}

func place(games []league.Game, byID map[string]int, pick league.Pick) (int, league.Side, bool) {
	if pick.GameID != "" {
		idx, ok := byID[pick.GameID]
		if !ok {
			return 0, league.SideUnresolved, false
		}
		if pick.Side.Valid() {
			return idx, pick.Side, true
		}
		side, ok := games[idx].SideFor(pick.Choice)
		return idx, side, ok
	}

	for i, g := range games {
		if pick.Week != 0 && g.Week != 0 && pick.Week != g.Week {
			continue
		}
		if side, ok := namedSide(g, pick.Choice); ok {
			return i, side, true
		}
	}
	return 0, league.SideUnresolved, false
}

// namedSide only accepts team names: a bare home/away token says nothing
// about which game it refers to.
func namedSide(g league.Game, choice string) (league.Side, bool) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return league.SideUnresolved, false
	}
	if g.HomeTeam != "" && strings.EqualFold(choice, g.HomeTeam) {
		return league.SideHome, true
	}
	if g.AwayTeam != "" && strings.EqualFold(choice, g.AwayTeam) {
		return league.SideAway, true
	}
	return league.SideUnresolved, false
}

// WeeklyScores turns a week's totals into records ordered by participant.
func WeeklyScores(week int, totals map[string]int) []league.WeeklyScore {
	scores := make([]league.WeeklyScore, 0, len(totals))
	for name, score := range totals {
		scores = append(scores, league.WeeklyScore{Participant: name, Week: week, Score: score})
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Participant < scores[j].Participant
	})
	return scores
}
