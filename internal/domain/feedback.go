package domain

import (
	"context"
	"time"
)

// AIFeedback records a user's reaction to a piece of AI output, kept for
// prompt tuning.
type AIFeedback struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	SourceType string    `json:"sourceType"`
	SourceID   string    `json:"sourceId"`
	AIOutput   string    `json:"aiOutput"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedbackRepository is the port for AI-feedback persistence.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, f *AIFeedback) error
}
