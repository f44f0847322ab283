package sqlstore

import (
	"context"
	"database/sql"

	"innerlight/internal/domain"
)

// CreateStory inserts a story.
func (d *DB) CreateStory(ctx context.Context, s *domain.Story) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO stories (id, belief_id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.BeliefID, s.UserID, s.Title, s.Content, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// GetStory retrieves one of the user's stories.
func (d *DB) GetStory(ctx context.Context, userID, id string) (*domain.Story, error) {
	var s domain.Story
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, belief_id, user_id, title, content, created_at, updated_at
		 FROM stories WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&s.ID, &s.BeliefID, &s.UserID, &s.Title, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListBeliefStories returns a belief's stories, newest first.
func (d *DB) ListBeliefStories(ctx context.Context, userID, beliefID string) ([]domain.Story, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, belief_id, user_id, title, content, created_at, updated_at
		 FROM stories WHERE belief_id = $1 AND user_id = $2 ORDER BY created_at DESC`,
		beliefID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(&s.ID, &s.BeliefID, &s.UserID, &s.Title, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

// ListStoryTitles returns the titles of the user's stories; untitled stories
// are excluded.
func (d *DB) ListStoryTitles(ctx context.Context, userID string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT title FROM stories
		 WHERE user_id = $1 AND title IS NOT NULL AND title <> ''
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// UpdateStory saves a story's title and content.
func (d *DB) UpdateStory(ctx context.Context, s *domain.Story) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE stories SET title = $1, content = $2, updated_at = $3 WHERE id = $4 AND user_id = $5",
		s.Title, s.Content, s.UpdatedAt, s.ID, s.UserID,
	)
	return err
}

// DeleteStory removes one story.
func (d *DB) DeleteStory(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM stories WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

// CreateVision inserts a life vision.
func (d *DB) CreateVision(ctx context.Context, v *domain.LifeVision) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO life_visions (id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.UserID, v.Title, v.Content, v.CreatedAt, v.UpdatedAt,
	)
	return err
}

// GetVision retrieves one of the user's visions.
func (d *DB) GetVision(ctx context.Context, userID, id string) (*domain.LifeVision, error) {
	var v domain.LifeVision
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM life_visions WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&v.ID, &v.UserID, &v.Title, &v.Content, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVisions returns the user's visions, newest first.
func (d *DB) ListVisions(ctx context.Context, userID string) ([]domain.LifeVision, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM life_visions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visions []domain.LifeVision
	for rows.Next() {
		var v domain.LifeVision
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Content, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		visions = append(visions, v)
	}
	return visions, rows.Err()
}

// UpdateVision saves a vision's title and content.
func (d *DB) UpdateVision(ctx context.Context, v *domain.LifeVision) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE life_visions SET title = $1, content = $2, updated_at = $3 WHERE id = $4 AND user_id = $5",
		v.Title, v.Content, v.UpdatedAt, v.ID, v.UserID,
	)
	return err
}

// DeleteVision removes one vision.
func (d *DB) DeleteVision(ctx context.Context, userID, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM life_visions WHERE id = $1 AND user_id = $2", id, userID)
	return err
}
