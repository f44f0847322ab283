package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"innerlight/internal/domain"
)

// CountsByUser returns one overview row per user, oldest account first.
func (d *DB) CountsByUser(ctx context.Context, now time.Time) ([]domain.UserCounts, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT u.id, u.email, u.password_hash, u.name, u.gender, u.date_of_birth, u.place_of_birth, u.role, u.created_at, u.updated_at,
		        (SELECT COUNT(*) FROM journal_entries e WHERE e.user_id = u.id),
		        (SELECT COUNT(*) FROM beliefs b WHERE b.user_id = u.id),
		        (SELECT COUNT(*) FROM stories s WHERE s.user_id = u.id),
		        (SELECT COUNT(*) FROM sessions se WHERE se.user_id = u.id AND se.expires_at > $1)
		 FROM users u ORDER BY u.created_at`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.UserCounts
	for rows.Next() {
		var c domain.UserCounts
		u := &c.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Gender, &u.DateOfBirth, &u.PlaceOfBirth, &u.Role, &u.CreatedAt, &u.UpdatedAt,
			&c.Entries, &c.Beliefs, &c.Stories, &c.ActiveSessions,
		); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// UserActivity aggregates one user's footprint.
func (d *DB) UserActivity(ctx context.Context, userID string, now time.Time) (*domain.UserActivity, error) {
	a := &domain.UserActivity{BeliefsByState: map[string]int{}}

	err := d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM journal_entries WHERE user_id = $1",
		userID,
	).Scan(&a.Entries)
	if err != nil {
		return nil, err
	}

	// Selecting the column directly keeps its declared type, which SQLite
	// needs to hand back a time value; MAX() would erase it.
	var lastEntry time.Time
	err = d.sql.QueryRowContext(ctx,
		"SELECT created_at FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1",
		userID,
	).Scan(&lastEntry)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, err
	default:
		a.LastEntryAt = &lastEntry
	}

	rows, err := d.sql.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM beliefs WHERE user_id = $1 GROUP BY status",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		a.BeliefsByState[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	simple := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM stories WHERE user_id = $1", &a.Stories},
		{"SELECT COUNT(*) FROM affirmations WHERE user_id = $1", &a.Affirmations},
		{"SELECT COUNT(*) FROM reflections WHERE user_id = $1", &a.Reflections},
		{"SELECT COUNT(*) FROM life_visions WHERE user_id = $1", &a.Visions},
	}
	for _, q := range simple {
		if err := d.sql.QueryRowContext(ctx, q.query, userID).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	err = d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sessions WHERE user_id = $1 AND expires_at > $2",
		userID, now,
	).Scan(&a.ActiveSessions)
	if err != nil {
		return nil, err
	}
	return a, nil
}
