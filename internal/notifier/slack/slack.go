package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	"github.com/slack-go/slack"
)

// maxSkippedShown caps how many skipped poll lines are echoed back to the channel.
const maxSkippedShown = 5

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendPollSummary posts what was picked up from an imported poll.
func (s *Notifier) SendPollSummary(summary notifier.PollSummary, dryRun bool) (string, error) {
	msg := s.formatPollSummary(summary)
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

// SendStandings posts the weekly and season standings.
func (s *Notifier) SendStandings(report notifier.StandingsReport, dryRun bool) (string, error) {
	msg := s.formatStandings(report)
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

// FormatStandingsResponse formats a ranking for a slash command response.
func (s *Notifier) FormatStandingsResponse(title string, week int, standings []scoring.Standing) (any, error) {
	return s.formatRanking(title, week, standings), nil
}

// FormatNoStandingsResponse formats the reply used when nothing has been scored yet.
func (s *Notifier) FormatNoStandingsResponse(week int) (any, error) {
	text := "No games have been imported yet."
	if week > 0 {
		text = fmt.Sprintf("No games have been imported for week %d yet.", week)
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	), nil
}

func (s *Notifier) formatPollSummary(summary notifier.PollSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🗳️ Week %d picks are in! 🗳️", summary.Week), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Games: %d\nPicks: %d", summary.Games, summary.Picks)
	if summary.ExplicitChoices > 0 {
		detailsText += fmt.Sprintf("\nExplicit choices: %d", summary.ExplicitChoices)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if len(summary.Skipped) > 0 {
		lines := make([]string, 0, maxSkippedShown+1)
		for i, skipped := range summary.Skipped {
			if i == maxSkippedShown {
				lines = append(lines, fmt.Sprintf("…and %d more", len(summary.Skipped)-maxSkippedShown))
				break
			}
			lines = append(lines, fmt.Sprintf("Line %d skipped (%s): %s", skipped.Line, skipped.Reason, skipped.Text))
		}
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatStandings(report notifier.StandingsReport) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏈 Week %d results 🏈", report.Week), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	weekly := "This week\n" + rankingLines(report.Weekly)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", weekly, true, false), nil, nil))
	blocks = append(blocks, slack.NewDividerBlock())

	season := "Season\n" + rankingLines(report.Cumulative)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", season, true, false), nil, nil))

	if report.Unmatched > 0 {
		note := fmt.Sprintf("⚠️ %d pick(s) did not match any game and were not scored.", report.Unmatched)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", note, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatRanking(title string, week int, standings []scoring.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s (week %d) 🏆", title, week), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No scores yet. Get your picks in!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, standing := range standings {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rankingLine(standing), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func rankingLines(standings []scoring.Standing) string {
	if len(standings) == 0 {
		return "No scores yet."
	}
	lines := make([]string, len(standings))
	for i, standing := range standings {
		lines[i] = rankingLine(standing)
	}
	return strings.Join(lines, "\n")
}

func rankingLine(standing scoring.Standing) string {
	var medal string
	switch standing.Rank {
	case 1:
		medal = "🥇 "
	case 2:
		medal = "🥈 "
	case 3:
		medal = "🥉 "
	}
	return fmt.Sprintf("%d. %s%s: %d", standing.Rank, medal, standing.Participant, standing.Score)
}
