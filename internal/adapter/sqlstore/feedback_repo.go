package sqlstore

import (
	"context"

	"innerlight/internal/domain"
)

// CreateFeedback records a user's reaction to a piece of AI output.
func (d *DB) CreateFeedback(ctx context.Context, f *domain.AIFeedback) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO ai_feedback (id, user_id, source_type, source_id, ai_output, feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.UserID, f.SourceType, f.SourceID, f.AIOutput, f.Feedback, f.CreatedAt,
	)
	return err
}
