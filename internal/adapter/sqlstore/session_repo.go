package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"innerlight/internal/domain"
)

// CreateSession inserts a new session row.
func (d *DB) CreateSession(ctx context.Context, s *domain.Session) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)",
		s.ID, s.UserID, s.ExpiresAt,
	)
	return err
}

// GetSession retrieves a session by ID.
func (d *DB) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at FROM sessions WHERE id = $1", id,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSessionExpiry pushes a session's expiry forward.
func (d *DB) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE sessions SET expires_at = $1 WHERE id = $2", expiresAt, id)
	return err
}

// DeleteSession removes one session. Deleting a missing session is a no-op.
func (d *DB) DeleteSession(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id)
	return err
}

// DeleteUserSessions removes every session a user holds.
func (d *DB) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID)
	return err
}
