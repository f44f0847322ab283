package domain

import (
	"context"
	"time"
)

// Story is a generated or user-edited mythic story tied to a belief.
type Story struct {
	ID        string    `json:"id"`
	BeliefID  string    `json:"beliefId"`
	UserID    string    `json:"userId"`
	Title     *string   `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LifeVision is a saved first-person vision of the user's transformed life.
type LifeVision struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     *string   `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoryRepository is the port for story persistence.
type StoryRepository interface {
	CreateStory(ctx context.Context, s *Story) error
	GetStory(ctx context.Context, userID, id string) (*Story, error)
	// ListBeliefStories returns a belief's stories, newest first.
	ListBeliefStories(ctx context.Context, userID, beliefID string) ([]Story, error)
	// ListStoryTitles returns the titles of the user's stories, untitled
	// stories excluded.
	ListStoryTitles(ctx context.Context, userID string) ([]string, error)
	UpdateStory(ctx context.Context, s *Story) error
	DeleteStory(ctx context.Context, userID, id string) error
}

// VisionRepository is the port for life-vision persistence.
type VisionRepository interface {
	CreateVision(ctx context.Context, v *LifeVision) error
	GetVision(ctx context.Context, userID, id string) (*LifeVision, error)
	// ListVisions returns the user's visions, newest first.
	ListVisions(ctx context.Context, userID string) ([]LifeVision, error)
	UpdateVision(ctx context.Context, v *LifeVision) error
	DeleteVision(ctx context.Context, userID, id string) error
}
