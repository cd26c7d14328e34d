package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/pkg/log"
)

// SessionRepo keeps conversation state for front ends whose host does not
// echo it back.
type SessionRepo struct {
	db *sql.DB
}

var _ core.SessionRepository = (*SessionRepo)(nil)

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Load returns an empty state for unknown sessions.
func (r *SessionRepo) Load(ctx context.Context, sessionID string) (core.ConversationState, error) {
	state := core.ConversationState{Session: sessionID}

	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT parameters FROM sessions WHERE session_id = ?`, sessionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &state.Parameters); err != nil {
		return state, fmt.Errorf("failed to decode session parameters: %w", err)
	}
	return state, nil
}

func (r *SessionRepo) Save(ctx context.Context, sessionID string, state core.ConversationState) error {
	params := state.Parameters
	if params == nil {
		params = map[string]json.RawMessage{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode session parameters: %w", err)
	}

	query := `
		INSERT INTO sessions (session_id, parameters, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET parameters = excluded.parameters, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, sessionID, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("bytes", len(data)).Msg("session saved")
	return nil
}

// Reset forgets a session entirely.
func (r *SessionRepo) Reset(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}

// PurgeOlderThan drops sessions idle for longer than d and reports how many.
func (r *SessionRepo) PurgeOlderThan(ctx context.Context, d time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, time.Now().UTC().Add(-d))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
