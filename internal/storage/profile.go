package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/torus2048/internal/engine"
)

// ProfileStore persists one player's game in progress and best score for
// one game mode. It implements engine.StateStore.
type ProfileStore struct {
	db      *sql.DB
	profile string
	gameID  string
}

var _ engine.StateStore = (*ProfileStore)(nil)

// Profile returns the state store for a player and game mode.
func (s *Store) Profile(profile, gameID string) *ProfileStore {
	return &ProfileStore{db: s.db, profile: profile, gameID: gameID}
}

// Name returns the profile name.
func (p *ProfileStore) Name() string { return p.profile }

// GameState loads the saved game. It returns nil, nil when nothing is saved
// and an error wrapping engine.ErrMalformedState when the stored data does
// not decode.
func (p *ProfileStore) GameState() (*engine.SavedGame, error) {
	raw, err := p.RawGameState()
	if err != nil || raw == nil {
		return nil, err
	}

	state, err := engine.UnmarshalSavedGame(raw)
	if err != nil {
		return nil, fmt.Errorf("storage: saved game for %s/%s: %w", p.profile, p.gameID, err)
	}
	return state, nil
}

// RawGameState returns the stored encoding, or nil when nothing is saved.
func (p *ProfileStore) RawGameState() ([]byte, error) {
	var state string
	err := p.db.QueryRow(
		"SELECT state FROM game_states WHERE profile = ? AND game_id = ?",
		p.profile, p.gameID,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game state: %w", err)
	}
	return []byte(state), nil
}

// SetGameState replaces the saved game.
func (p *ProfileStore) SetGameState(state engine.SavedGame) error {
	data, err := engine.MarshalSavedGame(state)
	if err != nil {
		return fmt.Errorf("storage: cannot encode game state: %w", err)
	}
	return p.setRaw(data)
}

func (p *ProfileStore) setRaw(data []byte) error {
	_, err := p.db.Exec(
		`INSERT INTO game_states (profile, game_id, state) VALUES (?, ?, ?)
		 ON CONFLICT(profile, game_id) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP`,
		p.profile, p.gameID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game state: %w", err)
	}
	return nil
}

// ClearGameState removes the saved game.
func (p *ProfileStore) ClearGameState() error {
	_, err := p.db.Exec(
		"DELETE FROM game_states WHERE profile = ? AND game_id = ?",
		p.profile, p.gameID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear game state: %w", err)
	}
	return nil
}

// BestScore returns the stored best score, 0 when none is stored.
func (p *ProfileStore) BestScore() (int, error) {
	var score int
	err := p.db.QueryRow(
		"SELECT score FROM best_scores WHERE profile = ? AND game_id = ?",
		p.profile, p.gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return score, nil
}

// SetBestScore replaces the stored best score.
func (p *ProfileStore) SetBestScore(score int) error {
	_, err := p.db.Exec(
		`INSERT INTO best_scores (profile, game_id, score) VALUES (?, ?, ?)
		 ON CONFLICT(profile, game_id) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP`,
		p.profile, p.gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}
