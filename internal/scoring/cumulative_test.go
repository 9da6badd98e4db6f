package scoring_test

import (
	"testing"

	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/roster"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func total(scores []league.CumulativeScore) int {
	sum := 0
	for _, s := range scores {
		sum += s.Score
	}
	return sum
}

func scoreOf(scores []league.CumulativeScore, name string) int {
	for _, s := range scores {
		if s.Participant == name {
			return s.Score
		}
	}
	return -1
}

func TestCumulativeScores(t *testing.T) {
	Convey("Given the league roster", t, func() {
		r := roster.Default()

		Convey("When there are no weekly scores", func() {
			got := scoring.CumulativeScores(nil, 5, r)

			Convey("Then every participant is reported at zero in roster order", func() {
				So(got, ShouldHaveLength, 12)
				for i, name := range r.Names() {
					So(got[i].Participant, ShouldEqual, name)
					So(got[i].Score, ShouldEqual, 0)
				}
			})
		})

		Convey("When weekly scores span several weeks", func() {
			weekly := []league.WeeklyScore{
				{Participant: "Murder Hornets", Week: 1, Score: 3},
				{Participant: "Murder Hornets", Week: 2, Score: 4},
				{Participant: "Murder Hornets", Week: 3, Score: 5},
				{Participant: "Tundra Wolves", Week: 2, Score: 6},
			}

			Convey("Then only weeks up to the current week count", func() {
				got := scoring.CumulativeScores(weekly, 2, r)
				So(got, ShouldHaveLength, 12)
				So(scoreOf(got, "Murder Hornets"), ShouldEqual, 7)
				So(scoreOf(got, "Tundra Wolves"), ShouldEqual, 6)
				So(total(got), ShouldEqual, 13)
			})

			Convey("And a current week before the season yields all zeros", func() {
				got := scoring.CumulativeScores(weekly, 0, r)
				So(total(got), ShouldEqual, 0)
			})

			Convey("And recomputing gives the same answer", func() {
				So(scoring.CumulativeScores(weekly, 3, r), ShouldResemble, scoring.CumulativeScores(weekly, 3, r))
			})
		})

		Convey("When one participant appears under two spellings", func() {
			weekly := []league.WeeklyScore{
				{Participant: "Sonora Sugar Skulls", Week: 1, Score: 2},
				{Participant: "Sugar Skulls", Week: 2, Score: 5},
				{Participant: "Thumbz", Week: 2, Score: 1},
			}
			got := scoring.CumulativeScores(weekly, 2, r)

			Convey("Then both land in the canonical bucket", func() {
				So(scoreOf(got, "Sonora Sugar Skulls"), ShouldEqual, 7)
				So(scoreOf(got, "Murder Hornets"), ShouldEqual, 1)
				So(scoreOf(got, "Sugar Skulls"), ShouldEqual, -1)
			})
		})

		Convey("When a weekly score names someone outside the roster", func() {
			weekly := []league.WeeklyScore{
				{Participant: "Guest Team", Week: 1, Score: 9},
				{Participant: "Desert Foxes", Week: 1, Score: 2},
			}
			got := scoring.CumulativeScores(weekly, 1, r)

			Convey("Then it is dropped and the sum covers only known participants", func() {
				So(got, ShouldHaveLength, 12)
				So(total(got), ShouldEqual, 2)
			})
		})
	})
}

func TestWeekScores(t *testing.T) {
	Convey("Given weekly scores for two weeks", t, func() {
		r := roster.Default()
		weekly := []league.WeeklyScore{
			{Participant: "Bayou Bombers", Week: 1, Score: 4},
			{Participant: "Bayou Bombers", Week: 2, Score: 1},
			{Participant: "Thumbz", Week: 2, Score: 3},
		}

		Convey("When asking for week 2 alone", func() {
			got := scoring.WeekScores(weekly, 2, r)

			Convey("Then earlier weeks are left out", func() {
				So(got, ShouldHaveLength, 12)
				So(scoreOf(got, "Bayou Bombers"), ShouldEqual, 1)
				So(scoreOf(got, "Murder Hornets"), ShouldEqual, 3)
			})
		})
	})
}
