package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/tribble-pickem/internal/config"
	"github.com/mauv0809/tribble-pickem/internal/database"
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/metrics"
	"github.com/mauv0809/tribble-pickem/internal/notifier"
	"github.com/mauv0809/tribble-pickem/internal/processor"
	"github.com/mauv0809/tribble-pickem/internal/pubsub"
	"github.com/mauv0809/tribble-pickem/internal/roster"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

const testPoll = "\"Chiefs\"\n\"Eagles\"\nThumbz\nChiefs\nTundra Wolves\n\"Bills\"\n\"Jets\"\nTundra Wolves\n"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier) (*Server, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := league.New(db)
	reg := roster.Default()
	require.NoError(t, store.SyncParticipants(reg.Names()))

	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: testSlackSigningSecret}}
	promReg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(promReg)
	metricsHandler := metrics.NewMetricsHandler(promReg)
	ps := pubsub.NewMock()
	proc := processor.New(store, reg, notifier, metricsSvc, ps)
	server := NewServer(store, metricsSvc, metricsHandler, cfg, notifier, proc, ps)

	return server, ps, teardown
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func serve(server *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func importTestPoll(t *testing.T, server *Server) []league.Game {
	t.Helper()
	rr := serve(server, "POST", "/poll?week=1", strings.NewReader(testPoll))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var imp processor.Import
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &imp))
	require.Len(t, imp.Games, 2)
	return imp.Games
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := serve(server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestListParticipantsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := serve(server, "GET", "/participants", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var participants []league.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &participants))
	require.Len(t, participants, 12)
	assert.Equal(t, "Murder Hornets", participants[0].Name)
}

func TestImportPollHandler(t *testing.T) {
	t.Run("imports a plain text poll", func(t *testing.T) {
		mockNotifier := notifier.NewMock()
		server, ps, teardown := setupTestServer(t, mockNotifier)
		defer teardown()

		games := importTestPoll(t, server)
		assert.Equal(t, "Chiefs", games[0].HomeTeam)
		assert.Equal(t, "Jets", games[1].AwayTeam)
		assert.Equal(t, []pubsub.EventType{pubsub.EventPollImported}, ps.Topics())
		assert.Len(t, mockNotifier.SendPollSummaryCalls, 1)

		rr := serve(server, "GET", "/picks?week=1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var resp weekResponse[[]league.Pick]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Week)
		require.Len(t, resp.Data, 3)
		assert.Equal(t, "Murder Hornets", resp.Data[0].Participant)
		assert.Equal(t, "Chiefs", resp.Data[0].Choice)
		assert.Equal(t, league.SideHome, resp.Data[0].Side)
	})

	t.Run("imports an html poll", func(t *testing.T) {
		server, _, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()

		page := `<html><body><div>"Chiefs"</div><div>"Eagles"</div><p>Thumbz</p></body></html>`
		req := httptest.NewRequest("POST", "/poll?week=2", strings.NewReader(page))
		req.Header.Set("Content-Type", "text/html; charset=utf-8")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = serve(server, "GET", "/games", nil)
		var resp weekResponse[[]league.Game]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Week)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Eagles", resp.Data[0].AwayTeam)
	})

	t.Run("dry run stores nothing", func(t *testing.T) {
		server, ps, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()

		rr := serve(server, "POST", "/poll?week=1&dry_run=true", strings.NewReader(testPoll))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, ps.SendMessageCalls)

		rr = serve(server, "GET", "/games?week=1", nil)
		assert.JSONEq(t, `{"week":1,"data":[]}`, rr.Body.String())
	})

	t.Run("rejects bad requests", func(t *testing.T) {
		server, _, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()

		assert.Equal(t, http.StatusBadRequest, serve(server, "POST", "/poll", strings.NewReader(testPoll)).Code)
		assert.Equal(t, http.StatusBadRequest, serve(server, "POST", "/poll?week=x", strings.NewReader(testPoll)).Code)
		assert.Equal(t, http.StatusBadRequest, serve(server, "POST", "/poll?week=1", strings.NewReader("Thumbz\n")).Code)
		assert.Equal(t, http.StatusMethodNotAllowed, serve(server, "GET", "/poll?week=1", nil).Code)
	})

	t.Run("rejects oversized polls instead of truncating them", func(t *testing.T) {
		server, ps, teardown := setupTestServer(t, notifier.NewMock())
		defer teardown()

		oversized := testPoll + strings.Repeat("Thumbz\n", maxPollBytes/len("Thumbz\n")+1)
		rr := serve(server, "POST", "/poll?week=1", strings.NewReader(oversized))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())

		page := "<html><body><p>" + strings.Repeat("x", maxPollBytes) + "</p></body></html>"
		req := httptest.NewRequest("POST", "/poll?week=1", strings.NewReader(page))
		req.Header.Set("Content-Type", "text/html")
		rr = httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())

		assert.Empty(t, ps.SendMessageCalls)
		rr = serve(server, "GET", "/games?week=1", nil)
		assert.JSONEq(t, `{"week":1,"data":[]}`, rr.Body.String())
	})
}

func TestRecordResultHandler(t *testing.T) {
	server, ps, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	games := importTestPoll(t, server)
	ps.Reset()

	rr := serve(server, "POST", "/result?game="+games[0].ID+"&winner=Chiefs", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var game league.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, league.SideHome, game.Winner)
	assert.Equal(t, []pubsub.EventType{pubsub.EventResultRecorded, pubsub.EventRecalculateWeek}, ps.Topics())

	t.Run("same winner again", func(t *testing.T) {
		rr := serve(server, "POST", "/result?game="+games[0].ID+"&winner=home", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("conflicting winner", func(t *testing.T) {
		rr := serve(server, "POST", "/result?game="+games[0].ID+"&winner=Eagles", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("winner not in game", func(t *testing.T) {
		rr := serve(server, "POST", "/result?game="+games[1].ID+"&winner=Chiefs", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		rr := serve(server, "POST", "/result?game=nope&winner=home", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing parameters", func(t *testing.T) {
		rr := serve(server, "POST", "/result?game="+games[1].ID, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("clear and record again", func(t *testing.T) {
		rr := serve(server, "POST", "/result/clear?game="+games[0].ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = serve(server, "POST", "/result?game="+games[0].ID+"&winner=Eagles", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRecalculateAndStandings(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	t.Run("nothing imported yet", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(server, "GET", "/standings", nil).Code)
		assert.Equal(t, http.StatusNotFound, serve(server, "POST", "/recalculate", nil).Code)
	})

	games := importTestPoll(t, server)
	require.Equal(t, http.StatusOK, serve(server, "POST", "/result?game="+games[0].ID+"&winner=Chiefs", nil).Code)
	require.Equal(t, http.StatusOK, serve(server, "POST", "/result?game="+games[1].ID+"&winner=Jets", nil).Code)

	rr := serve(server, "POST", "/recalculate?week=1", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var report processor.WeekReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Resolved)
	require.Len(t, mockNotifier.SendStandingsCalls, 1)

	rr = serve(server, "GET", "/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var standings weekResponse[[]scoring.Standing]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	assert.Equal(t, 1, standings.Week)
	require.Len(t, standings.Data, 12)
	// Murder Hornets took Chiefs; Tundra Wolves took Eagles then Jets.
	assert.Equal(t, scoring.Standing{Participant: "Murder Hornets", Score: 1, Rank: 1}, standings.Data[0])
	assert.Equal(t, scoring.Standing{Participant: "Tundra Wolves", Score: 1, Rank: 2}, standings.Data[1])
	assert.Equal(t, 0, standings.Data[2].Score)
	assert.Equal(t, 3, standings.Data[2].Rank)

	rr = serve(server, "GET", "/weekly?week=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var weekly weekResponse[[]scoring.Standing]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &weekly))
	assert.Equal(t, "Murder Hornets", weekly.Data[0].Participant)

	t.Run("clear week", func(t *testing.T) {
		rr := serve(server, "POST", "/clear?week=1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, http.StatusNotFound, serve(server, "GET", "/standings", nil).Code)
		assert.Equal(t, http.StatusBadRequest, serve(server, "POST", "/clear", nil).Code)
	})
}

func TestRecalculateWeekPushHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	games := importTestPoll(t, server)
	require.Equal(t, http.StatusOK, serve(server, "POST", "/result?game="+games[0].ID+"&winner=away", nil).Code)

	push := func(t *testing.T, event pubsub.WeekEvent) *httptest.ResponseRecorder {
		t.Helper()
		data, err := pubsub.Encode(event)
		require.NoError(t, err)
		var env pubsub.Envelope
		env.Subscription = "projects/test/subscriptions/recalculate-week"
		env.Message.ID = "1"
		env.Message.Data = base64.StdEncoding.EncodeToString(data)
		body, err := json.Marshal(env)
		require.NoError(t, err)
		return serve(server, "POST", "/pubsub/recalculate-week", bytes.NewReader(body))
	}

	rr := push(t, pubsub.WeekEvent{Week: 1, GameID: games[0].ID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	scores, err := server.Store.GetWeeklyScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, league.WeeklyScore{Participant: "Murder Hornets", Week: 1, Score: 0}, scores[0])
	assert.Equal(t, league.WeeklyScore{Participant: "Tundra Wolves", Week: 1, Score: 1}, scores[1])

	t.Run("invalid envelope", func(t *testing.T) {
		rr := serve(server, "POST", "/pubsub/recalculate-week", strings.NewReader("not json"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestStandingsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatStandingsResponseFunc = func(title string, week int, standings []scoring.Standing) (any, error) {
		return slack.Message{}, nil
	}
	mockNotifier.FormatNoStandingsResponseFunc = func(week int) (any, error) {
		return slack.Message{}, nil
	}
	server, _, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	t.Run("no games yet", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, mockNotifier.FormatNoStandingsResponseCalls, 1)
	})

	importTestPoll(t, server)

	t.Run("latest week", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatStandingsResponseCalls, 1)
		assert.Equal(t, "Standings", mockNotifier.FormatStandingsResponseCalls[0].Title)
		assert.Equal(t, 1, mockNotifier.FormatStandingsResponseCalls[0].Week)
		assert.Len(t, mockNotifier.FormatStandingsResponseCalls[0].Standings, 12)
	})

	t.Run("weekly with explicit week", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "week 1")
		req := createSlackCommandRequest(t, "/slack/command/weekly", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.FormatStandingsResponseCalls, 2)
		assert.Equal(t, "Weekly scores", mockNotifier.FormatStandingsResponseCalls[1].Title)
	})

	t.Run("invalid week text", func(t *testing.T) {
		form := url.Values{}
		form.Set("text", "last")
		req := createSlackCommandRequest(t, "/slack/command/standings", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		req.Header.Set("X-Slack-Signature", "v0=invalid-signature")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with outdated timestamp", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{}, testSlackSigningSecret)
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Add(-6*time.Minute).Unix(), 10))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()
	importTestPoll(t, server)

	rr := serve(server, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pickem_polls_imported_total 1")
}
