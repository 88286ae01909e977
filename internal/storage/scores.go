package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	GameID    string
	Profile   string
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	CreatedAt time.Time
}

// ScoreFilter narrows a score query. An empty Profile matches everyone.
type ScoreFilter struct {
	GameID  string
	Profile string
	Limit   int
}

// SaveScore records a finished run. Saving the same run ID twice keeps the
// first record, so a run is never counted twice.
// Returns the ID of the record, or 0 when the run was already stored.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.RunID == "" {
		return 0, errors.New("storage: cannot save score: empty run id")
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (run_id, game_id, profile, score, max_tile, moves, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		e.RunID, e.GameID, e.Profile, e.Score, e.MaxTile, e.Moves, e.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best runs matching the filter, highest first.
func (s *Store) TopScores(f ScoreFilter) ([]ScoreEntry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, profile, score, max_tile, moves, won, created_at
		 FROM scores
		 WHERE game_id = ? AND (? = '' OR profile = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		f.GameID, f.Profile, f.Profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Profile, &e.Score, &e.MaxTile, &e.Moves, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score for the game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes the score history for the game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	BestTile   int
	AvgScore   float64
	LastPlayed time.Time
}

// GetGameStats aggregates the score history of one game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.BestTile, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}
