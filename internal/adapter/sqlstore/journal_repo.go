package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"innerlight/internal/domain"
)

const journalColumns = "id, user_id, content, prompt, ai_insights, created_at, updated_at"

// CreateEntry inserts a new journal entry.
func (d *DB) CreateEntry(ctx context.Context, e *domain.JournalEntry) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO journal_entries (id, user_id, content, prompt, ai_insights, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Content, e.Prompt, e.AIInsights, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetEntry retrieves one of the user's entries.
func (d *DB) GetEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := d.sql.QueryRowContext(ctx,
		"SELECT "+journalColumns+" FROM journal_entries WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Content, &e.Prompt, &e.AIInsights, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEntries returns the user's entries, newest first.
func (d *DB) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+journalColumns+" FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Prompt, &e.AIInsights, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListRecentExcerpts returns the newest entry bodies, newest first.
func (d *DB) ListRecentExcerpts(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT content FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excerpts []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		excerpts = append(excerpts, content)
	}
	return excerpts, rows.Err()
}

// UpdateEntry saves an entry's content and prompt.
func (d *DB) UpdateEntry(ctx context.Context, e *domain.JournalEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE journal_entries SET content = $1, prompt = $2, updated_at = $3 WHERE id = $4 AND user_id = $5",
		e.Content, e.Prompt, e.UpdatedAt, e.ID, e.UserID,
	)
	return err
}

// SetInsights attaches generated insights to an entry.
func (d *DB) SetInsights(ctx context.Context, userID, id, insights string, updatedAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE journal_entries SET ai_insights = $1, updated_at = $2 WHERE id = $3 AND user_id = $4",
		insights, updatedAt, id, userID,
	)
	return err
}

// DeleteEntry removes one entry; links and reflections cascade.
func (d *DB) DeleteEntry(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM journal_entries WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

// LinkBelief records that a belief was extracted from an entry. Linking the
// same pair twice is a no-op.
func (d *DB) LinkBelief(ctx context.Context, entryID, beliefID string) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO journal_entry_beliefs (journal_entry_id, belief_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		entryID, beliefID,
	)
	return err
}

// ListEntryBeliefs returns the beliefs linked to a journal entry.
func (d *DB) ListEntryBeliefs(ctx context.Context, userID, entryID string) ([]domain.Belief, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.statement, b.status, b.functional_belief, b.created_at, b.updated_at
		 FROM beliefs b
		 JOIN journal_entry_beliefs jb ON jb.belief_id = b.id
		 WHERE jb.journal_entry_id = $1 AND b.user_id = $2
		 ORDER BY b.created_at DESC`,
		entryID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBeliefs(rows)
}

// CreateReflection inserts a reflection attached to an entry or a belief.
func (d *DB) CreateReflection(ctx context.Context, r *domain.Reflection) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO reflections (id, user_id, belief_id, journal_entry_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.UserID, r.BeliefID, r.JournalEntryID, r.Content, r.CreatedAt,
	)
	return err
}

// ListEntryReflections returns an entry's reflections, oldest first.
func (d *DB) ListEntryReflections(ctx context.Context, userID, entryID string) ([]domain.Reflection, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, belief_id, journal_entry_id, content, created_at
		 FROM reflections WHERE user_id = $1 AND journal_entry_id = $2 ORDER BY created_at`,
		userID, entryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reflections []domain.Reflection
	for rows.Next() {
		var r domain.Reflection
		if err := rows.Scan(&r.ID, &r.UserID, &r.BeliefID, &r.JournalEntryID, &r.Content, &r.CreatedAt); err != nil {
			return nil, err
		}
		reflections = append(reflections, r)
	}
	return reflections, rows.Err()
}
