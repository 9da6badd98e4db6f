package processor

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
	"github.com/mauv0809/tribble-pickem/internal/poll"
	"github.com/mauv0809/tribble-pickem/internal/pubsub"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
)

// New creates a new Processor.
func New(store Store, roster Roster, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		roster:   roster,
		parser:   poll.NewParser(roster),
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ImportPoll parses a pasted poll and replaces everything stored for the week
// with the games and picks found in it.
func (p *Processor) ImportPoll(week int, text string, dryRun bool) (*Import, error) {
	if week <= 0 {
		return nil, ErrInvalidWeek
	}
	parsed := p.parser.Parse(text)
	log.Info("Parsed poll", "week", week, "games", len(parsed.Games), "picks", len(parsed.Picks), "skipped", len(parsed.Report.Skipped))
	for _, skipped := range parsed.Report.Skipped {
		log.Warn("Skipped poll line", "week", week, "line", skipped.Line, "text", skipped.Text, "reason", skipped.Reason)
	}
	if len(parsed.Games) == 0 {
		return nil, ErrEmptyPoll
	}

	games := make([]league.Game, len(parsed.Games))
	for i, g := range parsed.Games {
		g.ID = uuid.NewString()
		g.Week = week
		games[i] = g
	}
	picks := make([]league.Pick, len(parsed.Picks))
	for i, pk := range parsed.Picks {
		picks[i] = league.Pick{
			ID:          uuid.NewString(),
			Participant: pk.Name,
			Week:        week,
			GameID:      games[pk.Game].ID,
			Choice:      pk.Pick,
			Side:        pk.Side,
		}
	}

	imp := &Import{Week: week, Games: games, Picks: picks, Report: parsed.Report}
	for _, pk := range picks {
		if !p.roster.IsCanonical(pk.Participant) && !slices.Contains(imp.Unknown, pk.Participant) {
			log.Warn("Pick from participant outside the roster", "week", week, "participant", pk.Participant)
			imp.Unknown = append(imp.Unknown, pk.Participant)
		}
	}

	if dryRun {
		log.Info("[Dry Run] Would replace week", "week", week, "games", len(games), "picks", len(picks))
	} else {
		if err := p.store.ReplaceWeek(week, games, picks); err != nil {
			return nil, fmt.Errorf("failed to store week %d: %w", week, err)
		}
		p.metrics.IncPollsImported()
		p.metrics.AddPicksParsed(len(picks))
		p.metrics.AddPollLinesSkipped(len(parsed.Report.Skipped))
		p.publish(pubsub.EventPollImported, pubsub.WeekEvent{Week: week, Games: len(games), Picks: len(picks)})
	}

	summary := notifier.PollSummary{
		Week:            week,
		Games:           len(games),
		Picks:           len(picks),
		ExplicitChoices: parsed.Report.ExplicitChoices,
		Skipped:         parsed.Report.Skipped,
	}
	if _, err := p.notifier.SendPollSummary(summary, dryRun); err != nil {
		log.Error("Failed to send poll summary", "error", err, "week", week)
	}
	return imp, nil
}

// RecordResult stores the winner of a game. winner is "home", "away" or one
// of the game's team names. A game's result can be set once; recording the
// same winner again is a no-op.
func (p *Processor) RecordResult(gameID, winner string, dryRun bool) (*league.Game, error) {
	game, err := p.store.GetGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	side, ok := game.SideFor(winner)
	if !ok {
		return nil, fmt.Errorf("%q for game %s: %w", winner, gameID, league.ErrInvalidSide)
	}
	if game.HasResult() {
		if game.Winner == side {
			log.Debug("Result already recorded", "gameID", gameID, "winner", side)
			return game, nil
		}
		return nil, fmt.Errorf("game %s was won by %s: %w", gameID, game.WinningTeam(), ErrResultAlreadyRecorded)
	}

	if dryRun {
		log.Info("[Dry Run] Would record result", "gameID", gameID, "winner", side)
		game.Winner = side
		return game, nil
	}

	if err := p.store.SetWinner(gameID, side); err != nil {
		return nil, fmt.Errorf("failed to record result for game %s: %w", gameID, err)
	}
	game.Winner = side
	p.metrics.IncResultsRecorded()
	log.Info("Recorded result", "gameID", gameID, "week", game.Week, "winner", game.WinningTeam())

	p.publish(pubsub.EventResultRecorded, pubsub.WeekEvent{Week: game.Week, GameID: gameID})
	p.publish(pubsub.EventRecalculateWeek, pubsub.WeekEvent{Week: game.Week, GameID: gameID})
	return game, nil
}

// ClearResult puts a game back into the unresolved state.
func (p *Processor) ClearResult(gameID string, dryRun bool) (*league.Game, error) {
	game, err := p.store.GetGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	if !game.HasResult() {
		return game, nil
	}
	if dryRun {
		log.Info("[Dry Run] Would clear result", "gameID", gameID)
		game.Winner = league.SideUnresolved
		return game, nil
	}
	if err := p.store.SetWinner(gameID, league.SideUnresolved); err != nil {
		return nil, fmt.Errorf("failed to clear result for game %s: %w", gameID, err)
	}
	game.Winner = league.SideUnresolved
	log.Info("Cleared result", "gameID", gameID, "week", game.Week)
	p.publish(pubsub.EventRecalculateWeek, pubsub.WeekEvent{Week: game.Week, GameID: gameID})
	return game, nil
}

// RecalculateWeek scores a week, stores its weekly and cumulative scores and
// posts the standings. week <= 0 selects the latest week.
func (p *Processor) RecalculateWeek(week int, dryRun bool) (*WeekReport, error) {
	start := time.Now()
	week, err := p.resolveWeek(week)
	if err != nil {
		return nil, err
	}

	games, err := p.store.GetGames(week)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for week %d: %w", week, err)
	}
	picks, err := p.store.GetPicks(week)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks for week %d: %w", week, err)
	}

	result := scoring.Score(games, picks)
	weekly := scoring.WeeklyScores(week, result.Totals)
	for _, pick := range result.Unmatched {
		log.Warn("Pick did not match any game", "week", week, "participant", pick.Participant, "choice", pick.Choice)
	}

	stored, err := p.store.GetWeeklyScores()
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly scores: %w", err)
	}
	all := make([]league.WeeklyScore, 0, len(stored)+len(weekly))
	for _, s := range stored {
		if s.Week != week {
			all = append(all, s)
		}
	}
	all = append(all, weekly...)
	cumulative := scoring.CumulativeScores(all, week, p.roster)

	if dryRun {
		log.Info("[Dry Run] Would store scores", "week", week, "weekly", len(weekly), "cumulative", len(cumulative))
	} else {
		if err := p.store.ReplaceWeeklyScores(week, weekly); err != nil {
			return nil, fmt.Errorf("failed to store weekly scores for week %d: %w", week, err)
		}
		if err := p.store.ReplaceCumulativeScores(week, cumulative); err != nil {
			return nil, fmt.Errorf("failed to store cumulative scores for week %d: %w", week, err)
		}
		// Later weeks carry this week's scores in their totals.
		for _, later := range laterWeeks(all, week) {
			if err := p.store.ReplaceCumulativeScores(later, scoring.CumulativeScores(all, later, p.roster)); err != nil {
				return nil, fmt.Errorf("failed to store cumulative scores for week %d: %w", later, err)
			}
		}
	}

	resolved := 0
	for _, g := range games {
		if g.HasResult() {
			resolved++
		}
	}
	report := &WeekReport{
		Week:       week,
		Games:      len(games),
		Resolved:   resolved,
		Weekly:     scoring.Rank(scoring.WeekScores(all, week, p.roster)),
		Cumulative: scoring.Rank(cumulative),
		Unmatched:  result.Unmatched,
	}

	if _, err := p.notifier.SendStandings(notifier.StandingsReport{
		Week:       week,
		Weekly:     report.Weekly,
		Cumulative: report.Cumulative,
		Unmatched:  len(result.Unmatched),
	}, dryRun); err != nil {
		log.Error("Failed to send standings", "error", err, "week", week)
	}

	if !dryRun {
		p.publish(pubsub.EventScoresUpdated, pubsub.WeekEvent{Week: week, Games: len(games), Picks: len(picks)})
		p.metrics.IncRecalculations()
		p.metrics.ObserveRecalculationDuration(time.Since(start).Seconds())
	}
	log.Info("Recalculated week", "week", week, "games", len(games), "resolved", resolved, "duration", time.Since(start))
	return report, nil
}

// Standings ranks every participant by their score up to and including week.
// week <= 0 selects the latest week.
func (p *Processor) Standings(week int) ([]scoring.Standing, int, error) {
	week, err := p.resolveWeek(week)
	if err != nil {
		return nil, 0, err
	}
	cumulative, err := p.store.GetCumulativeScores(week)
	if err != nil {
		return nil, week, fmt.Errorf("failed to get cumulative scores for week %d: %w", week, err)
	}
	if len(cumulative) == 0 {
		// Week not recalculated yet.
		weekly, err := p.store.GetWeeklyScores()
		if err != nil {
			return nil, week, fmt.Errorf("failed to get weekly scores: %w", err)
		}
		cumulative = scoring.CumulativeScores(weekly, week, p.roster)
	}
	return scoring.Rank(cumulative), week, nil
}

// WeekStandings ranks every participant by their score in week alone.
func (p *Processor) WeekStandings(week int) ([]scoring.Standing, int, error) {
	week, err := p.resolveWeek(week)
	if err != nil {
		return nil, 0, err
	}
	weekly, err := p.store.GetWeeklyScores()
	if err != nil {
		return nil, week, fmt.Errorf("failed to get weekly scores: %w", err)
	}
	return scoring.Rank(scoring.WeekScores(weekly, week, p.roster)), week, nil
}

// ClearWeek removes a week's games, picks and scores.
func (p *Processor) ClearWeek(week int, dryRun bool) error {
	if week <= 0 {
		return ErrInvalidWeek
	}
	if dryRun {
		log.Info("[Dry Run] Would clear week", "week", week)
		return nil
	}
	if err := p.store.ClearWeek(week); err != nil {
		return fmt.Errorf("failed to clear week %d: %w", week, err)
	}
	log.Info("Cleared week", "week", week)
	return nil
}

// laterWeeks returns the distinct weeks after week that have weekly scores,
// in ascending order.
func laterWeeks(scores []league.WeeklyScore, week int) []int {
	seen := make(map[int]bool)
	var weeks []int
	for _, s := range scores {
		if s.Week > week && !seen[s.Week] {
			seen[s.Week] = true
			weeks = append(weeks, s.Week)
		}
	}
	sort.Ints(weeks)
	return weeks
}

func (p *Processor) resolveWeek(week int) (int, error) {
	if week > 0 {
		return week, nil
	}
	latest, err := p.store.LatestWeek()
	if err != nil {
		return 0, fmt.Errorf("failed to get latest week: %w", err)
	}
	if latest == 0 {
		return 0, ErrNoGames
	}
	return latest, nil
}

func (p *Processor) publish(topic pubsub.EventType, event pubsub.WeekEvent) {
	if err := p.pubsub.SendMessage(topic, event); err != nil {
		log.Error("Failed to publish event", "error", err, "topic", topic, "week", event.Week)
	}
}
