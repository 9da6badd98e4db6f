package league

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// SyncParticipants makes the participants table mirror the configured roster,
// keeping the roster order in the position column.
func (s *store) SyncParticipants(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM participants"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO participants (name, position) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.Exec(name, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert participant %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// GetParticipants returns the persisted roster in roster order.
func (s *store) GetParticipants() ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name, position FROM participants ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.Name, &p.Position); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// ReplaceWeek swaps out everything stored for a week: its games, its picks
// and the scores derived from them. Imports are last-write-wins.
func (s *store) ReplaceWeek(week int, games []Game, picks []Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := clearWeekTx(tx, week); err != nil {
		tx.Rollback()
		return err
	}

	gameStmt, err := tx.Prepare(`
		INSERT INTO games (id, week, position, home_team, away_team, winner)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer gameStmt.Close()

	for i, g := range games {
		if _, err := gameStmt.Exec(g.ID, week, i, g.HomeTeam, g.AwayTeam, string(g.Winner)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert game %s: %w", g.ID, err)
		}
	}

	pickStmt, err := tx.Prepare(`
		INSERT INTO picks (id, participant, week, game_id, choice, side, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer pickStmt.Close()

	for i, p := range picks {
		gameID := sql.NullString{String: p.GameID, Valid: p.GameID != ""}
		if _, err := pickStmt.Exec(p.ID, p.Participant, week, gameID, p.Choice, string(p.Side), i); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert pick %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Replaced week", "week", week, "games", len(games), "picks", len(picks))
	return nil
}

// GetGames returns a week's games in the order they were imported.
func (s *store) GetGames(week int) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, week, home_team, away_team, winner
		FROM games
		WHERE week = ?
		ORDER BY position
	`, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// GetGame returns a single game or ErrGameNotFound.
func (s *store) GetGame(gameID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, week, home_team, away_team, winner FROM games WHERE id = ?", gameID)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	return game, err
}

// SetWinner records the result of a game. SideUnresolved clears it.
func (s *store) SetWinner(gameID string, winner Side) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE games SET winner = ? WHERE id = ?", string(winner), gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}

// GetPicks returns a week's picks in the order they were imported.
func (s *store) GetPicks(week int) ([]Pick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, participant, week, game_id, choice, side
		FROM picks
		WHERE week = ?
		ORDER BY position
	`, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []Pick
	for rows.Next() {
		var p Pick
		var gameID sql.NullString
		var side string
		if err := rows.Scan(&p.ID, &p.Participant, &p.Week, &gameID, &p.Choice, &side); err != nil {
			log.Error("Failed to scan pick row", "error", err)
			continue
		}
		p.GameID = gameID.String
		p.Side = Side(side)
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// ReplaceWeeklyScores overwrites the stored scores of one week.
func (s *store) ReplaceWeeklyScores(week int, scores []WeeklyScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM weekly_scores WHERE week = ?", week); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO weekly_scores (participant, week, score) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ws := range scores {
		if _, err := stmt.Exec(ws.Participant, week, ws.Score); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert weekly score for %q: %w", ws.Participant, err)
		}
	}
	return tx.Commit()
}

// GetWeeklyScores returns every stored weekly score, oldest week first.
func (s *store) GetWeeklyScores() ([]WeeklyScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT participant, week, score FROM weekly_scores ORDER BY week, participant")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []WeeklyScore
	for rows.Next() {
		var ws WeeklyScore
		if err := rows.Scan(&ws.Participant, &ws.Week, &ws.Score); err != nil {
			return nil, err
		}
		scores = append(scores, ws)
	}
	return scores, rows.Err()
}

// ReplaceCumulativeScores stores the totals as of a reference week.
func (s *store) ReplaceCumulativeScores(week int, scores []CumulativeScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM cumulative_scores WHERE week = ?", week); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO cumulative_scores (participant, week, position, score) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, cs := range scores {
		if _, err := stmt.Exec(cs.Participant, week, i, cs.Score); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert cumulative score for %q: %w", cs.Participant, err)
		}
	}
	return tx.Commit()
}

// GetCumulativeScores returns the totals stored for a reference week.
func (s *store) GetCumulativeScores(week int) ([]CumulativeScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT participant, score FROM cumulative_scores WHERE week = ? ORDER BY position", week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []CumulativeScore
	for rows.Next() {
		var cs CumulativeScore
		if err := rows.Scan(&cs.Participant, &cs.Score); err != nil {
			return nil, err
		}
		scores = append(scores, cs)
	}
	return scores, rows.Err()
}

// LatestWeek returns the highest week with games, or 0 when there are none.
func (s *store) LatestWeek() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var week sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(week) FROM games").Scan(&week); err != nil {
		return 0, err
	}
	return int(week.Int64), nil
}

// ClearWeek removes a week's games, picks and scores.
func (s *store) ClearWeek(week int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := clearWeekTx(tx, week); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// clearWeekTx also drops the stored totals of later weeks, since they were
// summed over the cleared week's scores.
func clearWeekTx(tx *sql.Tx, week int) error {
	for _, q := range []string{
		"DELETE FROM picks WHERE week = ?",
		"DELETE FROM games WHERE week = ?",
		"DELETE FROM weekly_scores WHERE week = ?",
		"DELETE FROM cumulative_scores WHERE week >= ?",
	} {
		if _, err := tx.Exec(q, week); err != nil {
			return fmt.Errorf("failed to clear week %d: %w", week, err)
		}
	}
	return nil
}

func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var g Game
	var winner string
	if err := scanner.Scan(&g.ID, &g.Week, &g.HomeTeam, &g.AwayTeam, &winner); err != nil {
		return nil, err
	}
	g.Winner = Side(winner)
	return &g, nil
}
