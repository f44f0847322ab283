package sqlstore

import (
	"context"
	"database/sql"

	"innerlight/internal/domain"
)

const beliefColumns = "id, user_id, statement, status, functional_belief, created_at, updated_at"

func collectBeliefs(rows *sql.Rows) ([]domain.Belief, error) {
	var beliefs []domain.Belief
	for rows.Next() {
		var b domain.Belief
		if err := rows.Scan(&b.ID, &b.UserID, &b.Statement, &b.Status, &b.FunctionalBelief, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		beliefs = append(beliefs, b)
	}
	return beliefs, rows.Err()
}

// CreateBelief inserts a new belief.
func (d *DB) CreateBelief(ctx context.Context, b *domain.Belief) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO beliefs (id, user_id, statement, status, functional_belief, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.Statement, b.Status, b.FunctionalBelief, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetBelief retrieves one of the user's beliefs.
func (d *DB) GetBelief(ctx context.Context, userID, id string) (*domain.Belief, error) {
	var b domain.Belief
	err := d.sql.QueryRowContext(ctx,
		"SELECT "+beliefColumns+" FROM beliefs WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&b.ID, &b.UserID, &b.Statement, &b.Status, &b.FunctionalBelief, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBeliefs returns the user's beliefs, newest first.
func (d *DB) ListBeliefs(ctx context.Context, userID string) ([]domain.Belief, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+beliefColumns+" FROM beliefs WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBeliefs(rows)
}

// UpdateBelief saves a belief's statement, status, and functional rewrite.
func (d *DB) UpdateBelief(ctx context.Context, b *domain.Belief) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE beliefs SET statement = $1, status = $2, functional_belief = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`,
		b.Statement, b.Status, b.FunctionalBelief, b.UpdatedAt, b.ID, b.UserID,
	)
	return err
}

// DeleteBelief removes a belief; origins, affirmations, and stories cascade.
func (d *DB) DeleteBelief(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM beliefs WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

// CreateOrigin inserts one answered origin question.
func (d *DB) CreateOrigin(ctx context.Context, o *domain.BeliefOrigin) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO belief_origins (id, belief_id, question, response, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.BeliefID, o.Question, o.Response, o.CreatedAt,
	)
	return err
}

// ListOrigins returns a belief's origins, oldest first.
func (d *DB) ListOrigins(ctx context.Context, beliefID string) ([]domain.BeliefOrigin, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, belief_id, question, response, created_at
		 FROM belief_origins WHERE belief_id = $1 ORDER BY created_at`,
		beliefID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrigins(rows)
}

// ListUserOrigins returns all origins across the user's beliefs.
func (d *DB) ListUserOrigins(ctx context.Context, userID string) ([]domain.BeliefOrigin, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT o.id, o.belief_id, o.question, o.response, o.created_at
		 FROM belief_origins o
		 JOIN beliefs b ON b.id = o.belief_id
		 WHERE b.user_id = $1 ORDER BY o.created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrigins(rows)
}

func collectOrigins(rows *sql.Rows) ([]domain.BeliefOrigin, error) {
	var origins []domain.BeliefOrigin
	for rows.Next() {
		var o domain.BeliefOrigin
		if err := rows.Scan(&o.ID, &o.BeliefID, &o.Question, &o.Response, &o.CreatedAt); err != nil {
			return nil, err
		}
		origins = append(origins, o)
	}
	return origins, rows.Err()
}

// DeleteOrigin removes one origin, scoped to the user's beliefs.
func (d *DB) DeleteOrigin(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		`DELETE FROM belief_origins WHERE id = $1
		 AND belief_id IN (SELECT id FROM beliefs WHERE user_id = $2)`,
		id, userID,
	)
	return err
}

// CreateAffirmation inserts an affirmation.
func (d *DB) CreateAffirmation(ctx context.Context, a *domain.Affirmation) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO affirmations (id, belief_id, user_id, content, is_ai_generated, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.BeliefID, a.UserID, a.Content, a.IsAIGenerated, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

const affirmationColumns = "id, belief_id, user_id, content, is_ai_generated, created_at, updated_at"

func collectAffirmations(rows *sql.Rows) ([]domain.Affirmation, error) {
	var affirmations []domain.Affirmation
	for rows.Next() {
		var a domain.Affirmation
		if err := rows.Scan(&a.ID, &a.BeliefID, &a.UserID, &a.Content, &a.IsAIGenerated, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		affirmations = append(affirmations, a)
	}
	return affirmations, rows.Err()
}

// ListBeliefAffirmations returns a belief's affirmations, newest first.
func (d *DB) ListBeliefAffirmations(ctx context.Context, userID, beliefID string) ([]domain.Affirmation, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+affirmationColumns+" FROM affirmations WHERE belief_id = $1 AND user_id = $2 ORDER BY created_at DESC",
		beliefID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAffirmations(rows)
}

// ListUserAffirmations returns all of the user's affirmations, newest first.
func (d *DB) ListUserAffirmations(ctx context.Context, userID string) ([]domain.Affirmation, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+affirmationColumns+" FROM affirmations WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAffirmations(rows)
}

// DeleteAffirmation removes one affirmation.
func (d *DB) DeleteAffirmation(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM affirmations WHERE id = $1 AND user_id = $2", id, userID)
	return err
}
