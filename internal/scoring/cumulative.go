package scoring

import "github.com/mauv0809/tribble-pickem/internal/league"

// Roster is the closed set of participants scores are reported for.
type Roster interface {
	Names() []string
	Resolve(name string) (string, bool)
}

// CumulativeScores sums every weekly score up to and including currentWeek
// into one entry per roster participant, in roster order. Names are resolved
// through the roster's aliases; entries that resolve to no participant are
// dropped.
func CumulativeScores(weekly []league.WeeklyScore, currentWeek int, roster Roster) []league.CumulativeScore {
	return aggregate(weekly, roster, func(week int) bool { return week <= currentWeek })
}

// WeekScores is the single-week counterpart of CumulativeScores.
func WeekScores(weekly []league.WeeklyScore, week int, roster Roster) []league.CumulativeScore {
	return aggregate(weekly, roster, func(w int) bool { return w == week })
}

func aggregate(weekly []league.WeeklyScore, roster Roster, include func(week int) bool) []league.CumulativeScore {
	names := roster.Names()
	totals := make(map[string]int, len(names))
	for _, name := range names {
		totals[name] = 0
	}

	for _, ws := range weekly {
		if !include(ws.Week) {
			continue
		}
		name, ok := roster.Resolve(ws.Participant)
		if !ok {
			continue
		}
		if _, known := totals[name]; !known {
			continue
		}
		totals[name] += ws.Score
	}

	out := make([]league.CumulativeScore, 0, len(names))
	for _, name := range names {
		out = append(out, league.CumulativeScore{Participant: name, Score: totals[name]})
	}
	return out
}
