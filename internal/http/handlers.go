package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/poll"
	"github.com/mauv0809/tribble-pickem/internal/processor"
	"github.com/mauv0809/tribble-pickem/internal/pubsub"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	"github.com/slack-go/slack"
)

// maxPollBytes bounds the size of an uploaded poll.
const maxPollBytes = 1 << 20

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loggerFromContext(r).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participants, err := s.Store.GetParticipants()
		if err != nil {
			http.Error(w, "Failed to get participants", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to get participants from store", "error", err)
			return
		}
		if participants == nil {
			participants = []league.Participant{}
		}
		respondWithJSON(w, http.StatusOK, participants)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, ok := s.weekOrLatest(w, r)
		if !ok {
			return
		}
		games, err := s.Store.GetGames(week)
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to get games from store", "error", err, "week", week)
			return
		}
		if games == nil {
			games = []league.Game{}
		}
		respondWithJSON(w, http.StatusOK, weekResponse[[]league.Game]{Week: week, Data: games})
	}
}

func (s *Server) ListPicksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, ok := s.weekOrLatest(w, r)
		if !ok {
			return
		}
		picks, err := s.Store.GetPicks(week)
		if err != nil {
			http.Error(w, "Failed to get picks", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to get picks from store", "error", err, "week", week)
			return
		}
		if picks == nil {
			picks = []league.Pick{}
		}
		respondWithJSON(w, http.StatusOK, weekResponse[[]league.Pick]{Week: week, Data: picks})
	}
}

// ImportPollHandler accepts the poll as plain text or, with an HTML content
// type, as the page it was copied from.
func (s *Server) ImportPollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil || week <= 0 {
			http.Error(w, "A positive 'week' parameter is required", http.StatusBadRequest)
			return
		}

		body := http.MaxBytesReader(w, r.Body, maxPollBytes)
		var text string
		if strings.Contains(r.Header.Get("Content-Type"), "text/html") {
			text, err = poll.TextFromHTML(body)
		} else {
			var raw []byte
			raw, err = io.ReadAll(body)
			text = string(raw)
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, fmt.Sprintf("Poll exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
				return
			}
			loggerFromContext(r).Error("Failed to read poll", "error", err)
			http.Error(w, "Failed to read poll", http.StatusBadRequest)
			return
		}

		loggerFromContext(r).Debug("Read poll", "week", week, "bytes", len(text))
		imp, err := s.Processor.ImportPoll(week, text, isDryRunFromContext(r))
		if err != nil {
			if errors.Is(err, processor.ErrEmptyPoll) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			loggerFromContext(r).Error("Failed to import poll", "error", err, "week", week)
			http.Error(w, "Failed to import poll", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, imp)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game")
		winner := r.URL.Query().Get("winner")
		if gameID == "" || winner == "" {
			http.Error(w, "'game' and 'winner' parameters are required", http.StatusBadRequest)
			return
		}

		game, err := s.Processor.RecordResult(gameID, winner, isDryRunFromContext(r))
		if err != nil {
			respondWithGameError(w, err, gameID)
			return
		}
		respondWithJSON(w, http.StatusOK, game)
	}
}

func (s *Server) ClearResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game")
		if gameID == "" {
			http.Error(w, "'game' parameter is required", http.StatusBadRequest)
			return
		}

		game, err := s.Processor.ClearResult(gameID, isDryRunFromContext(r))
		if err != nil {
			respondWithGameError(w, err, gameID)
			return
		}
		respondWithJSON(w, http.StatusOK, game)
	}
}

func (s *Server) RecalculateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil {
			http.Error(w, "Invalid 'week' parameter", http.StatusBadRequest)
			return
		}

		report, err := s.Processor.RecalculateWeek(week, isDryRunFromContext(r))
		if err != nil {
			if errors.Is(err, processor.ErrNoGames) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			loggerFromContext(r).Error("Failed to recalculate week", "error", err, "week", week)
			http.Error(w, "Failed to recalculate week", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, report)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return s.rankingHandler(s.Processor.Standings)
}

func (s *Server) WeeklyHandler() http.HandlerFunc {
	return s.rankingHandler(s.Processor.WeekStandings)
}

func (s *Server) rankingHandler(rank func(week int) ([]scoring.Standing, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil {
			http.Error(w, "Invalid 'week' parameter", http.StatusBadRequest)
			return
		}

		standings, week, err := rank(week)
		if err != nil {
			if errors.Is(err, processor.ErrNoGames) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			loggerFromContext(r).Error("Failed to get standings", "error", err, "week", week)
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, weekResponse[[]scoring.Standing]{Week: week, Data: standings})
	}
}

func (s *Server) ClearWeekHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil || week <= 0 {
			http.Error(w, "A positive 'week' parameter is required", http.StatusBadRequest)
			return
		}
		loggerFromContext(r).Info("Received request to clear a week", "week", week)
		if err := s.Processor.ClearWeek(week, isDryRunFromContext(r)); err != nil {
			loggerFromContext(r).Error("Failed to clear week", "error", err, "week", week)
			http.Error(w, "Failed to clear week", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Cleared week %d!", week)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
// The command text may name a week.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return s.rankingCommandHandler("Standings", s.Processor.Standings)
}

// WeeklyCommandHandler returns a handler for the /weekly Slack command.
func (s *Server) WeeklyCommandHandler() http.HandlerFunc {
	return s.rankingCommandHandler("Weekly scores", s.Processor.WeekStandings)
}

func (s *Server) rankingCommandHandler(title string, rank func(week int) ([]scoring.Standing, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		week := 0
		if text := strings.TrimSpace(r.FormValue("text")); text != "" {
			parsed, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(text), "week "))
			if err != nil || parsed <= 0 {
				http.Error(w, "Usage: a week number, or nothing for the latest week", http.StatusBadRequest)
				return
			}
			week = parsed
		}

		var msg any
		standings, week, err := rank(week)
		switch {
		case errors.Is(err, processor.ErrNoGames):
			msg, err = s.Notifier.FormatNoStandingsResponse(week)
		case err != nil:
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to get standings", "error", err)
			return
		default:
			msg, err = s.Notifier.FormatStandingsResponse(title, week, standings)
		}
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			loggerFromContext(r).Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// RecalculateWeekPushHandler receives recalculate-week events from a Pub/Sub
// push subscription.
func (s *Server) RecalculateWeekPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			loggerFromContext(r).Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		loggerFromContext(r).Debug("Received recalculate week message", "body", string(bodyBytes))

		rawData, err := pubsub.UnwrapPush(bodyBytes)
		if err != nil {
			loggerFromContext(r).Error("Failed to unwrap push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		var event pubsub.WeekEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			loggerFromContext(r).Error("Failed to decode recalculate week event", "error", err)
			http.Error(w, "Invalid message data", http.StatusBadRequest)
			return
		}

		if _, err := s.Processor.RecalculateWeek(event.Week, isDryRunFromContext(r)); err != nil {
			if errors.Is(err, processor.ErrNoGames) {
				// Nothing to score; acknowledge so the message is not redelivered.
				loggerFromContext(r).Warn("Recalculate event for a league without games", "week", event.Week)
				w.Write([]byte("OK"))
				return
			}
			loggerFromContext(r).Error("Failed to recalculate week", "error", err, "week", event.Week)
			http.Error(w, "Failed to recalculate week", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// weekParam reads the optional 'week' query parameter; absent means 0.
func weekParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 0 {
		return 0, fmt.Errorf("invalid week %q", raw)
	}
	return week, nil
}

// weekOrLatest resolves the week parameter, defaulting to the latest week
// with games. It writes the error response itself.
func (s *Server) weekOrLatest(w http.ResponseWriter, r *http.Request) (int, bool) {
	week, err := weekParam(r)
	if err != nil {
		http.Error(w, "Invalid 'week' parameter", http.StatusBadRequest)
		return 0, false
	}
	if week > 0 {
		return week, true
	}
	latest, err := s.Store.LatestWeek()
	if err != nil {
		http.Error(w, "Failed to get latest week", http.StatusInternalServerError)
		loggerFromContext(r).Error("Failed to get latest week", "error", err)
		return 0, false
	}
	return latest, true
}

func respondWithGameError(w http.ResponseWriter, err error, gameID string) {
	switch {
	case errors.Is(err, league.ErrGameNotFound):
		http.Error(w, "Game not found", http.StatusNotFound)
	case errors.Is(err, league.ErrInvalidSide):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, processor.ErrResultAlreadyRecorded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("Failed to update game", "error", err, "gameID", gameID)
		http.Error(w, "Failed to update game", http.StatusInternalServerError)
	}
}

func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}
