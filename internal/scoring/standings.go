package scoring

import (
	"sort"

	"github.com/mauv0809/tribble-pickem/internal/league"
)

// Standing is a participant's place in a ranking.
type Standing struct {
	Participant string `json:"participant" msgpack:"participant"`
	Score       int    `json:"score" msgpack:"score"`
	Rank        int    `json:"rank" msgpack:"rank"`
}

// Rank orders scores from highest to lowest and numbers them 1, 2, 3, ...
// Equal scores keep their input order and still get consecutive ranks.
func Rank(scores []league.CumulativeScore) []Standing {
	sorted := make([]league.CumulativeScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	standings := make([]Standing, len(sorted))
	for i, s := range sorted {
		standings[i] = Standing{Participant: s.Participant, Score: s.Score, Rank: i + 1}
	}
	return standings
}
