package slack

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
	"github.com/mauv0809/tribble-pickem/internal/poll"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, ts, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-thread-ts", ts)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
	assert.Contains(t, logs.String(), "channel=C123", "the failure names the configured channel")
}

func TestSendStandings_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	ts, err := n.SendStandings(notifier.StandingsReport{Week: 1}, false)

	require.NoError(t, err)
	assert.Equal(t, "ts123", ts)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendStandings")
}

func TestFormatStandings(t *testing.T) {
	report := notifier.StandingsReport{
		Week: 3,
		Weekly: []scoring.Standing{
			{Participant: "Murder Hornets", Score: 2, Rank: 1},
			{Participant: "Tundra Wolves", Score: 1, Rank: 2},
		},
		Cumulative: []scoring.Standing{
			{Participant: "Tundra Wolves", Score: 7, Rank: 1},
			{Participant: "Murder Hornets", Score: 6, Rank: 2},
			{Participant: "Desert Foxes", Score: 5, Rank: 3},
			{Participant: "Bayou Bombers", Score: 0, Rank: 4},
		},
		Unmatched: 2,
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatStandings(report)
	require.Len(t, msg.Blocks.BlockSet, 5)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🏈 Week 3 results 🏈", header.Text.Text)

	weekly, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "This week\n1. 🥇 Murder Hornets: 2\n2. 🥈 Tundra Wolves: 1", weekly.Text.Text)

	_, ok = msg.Blocks.BlockSet[2].(*slackapi.DividerBlock)
	require.True(t, ok)

	season, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Season\n1. 🥇 Tundra Wolves: 7\n2. 🥈 Murder Hornets: 6\n3. 🥉 Desert Foxes: 5\n4. Bayou Bombers: 0", season.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	note, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, note.Text, "2 pick(s)")
}

func TestFormatPollSummary(t *testing.T) {
	t.Run("without skipped lines", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatPollSummary(notifier.PollSummary{Week: 2, Games: 3, Picks: 10})
		require.Len(t, msg.Blocks.BlockSet, 2)

		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Games: 3\nPicks: 10", details.Text.Text)
	})

	t.Run("skipped lines are capped", func(t *testing.T) {
		skipped := make([]poll.SkippedLine, 7)
		for i := range skipped {
			skipped[i] = poll.SkippedLine{Line: i + 1, Text: "Thumbz", Reason: poll.ReasonNoOption}
		}
		client := &Notifier{channelID: "C123"}
		msg := client.formatPollSummary(notifier.PollSummary{Week: 2, Games: 1, Picks: 1, ExplicitChoices: 1, Skipped: skipped})
		require.Len(t, msg.Blocks.BlockSet, 3)

		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Games: 1\nPicks: 1\nExplicit choices: 1", details.Text.Text)

		contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
		require.True(t, ok)
		note, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Contains(t, note.Text, "Line 1 skipped")
		assert.NotContains(t, note.Text, "Line 6 skipped")
		assert.Contains(t, note.Text, "…and 2 more")
	})
}

func TestFormatStandingsResponse(t *testing.T) {
	t.Run("lists every participant", func(t *testing.T) {
		client := &Notifier{}
		resp, err := client.FormatStandingsResponse("Standings", 4, []scoring.Standing{
			{Participant: "A", Score: 3, Rank: 1},
			{Participant: "B", Score: 3, Rank: 2},
		})
		require.NoError(t, err)

		msg, ok := resp.(slackapi.Message)
		require.True(t, ok)
		require.Len(t, msg.Blocks.BlockSet, 3)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Standings (week 4) 🏆", header.Text.Text)

		second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "2. 🥈 B: 3", second.Text.Text)
	})

	t.Run("empty ranking", func(t *testing.T) {
		client := &Notifier{}
		resp, err := client.FormatStandingsResponse("Standings", 1, nil)
		require.NoError(t, err)

		msg := resp.(slackapi.Message)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No scores yet. Get your picks in!", section.Text.Text)
	})
}

func TestFormatNoStandingsResponse(t *testing.T) {
	client := &Notifier{}

	resp, err := client.FormatNoStandingsResponse(5)
	require.NoError(t, err)
	section := resp.(slackapi.Message).Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, "No games have been imported for week 5 yet.", section.Text.Text)

	resp, err = client.FormatNoStandingsResponse(0)
	require.NoError(t, err)
	section = resp.(slackapi.Message).Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, "No games have been imported yet.", section.Text.Text)
}
