package domain

import (
	"context"
	"time"
)

// Belief lifecycle statuses.
const (
	BeliefActive     = "active"
	BeliefShifting   = "shifting"
	BeliefIntegrated = "integrated"
)

// ValidBeliefStatus reports whether s is a known lifecycle status.
func ValidBeliefStatus(s string) bool {
	return s == BeliefActive || s == BeliefShifting || s == BeliefIntegrated
}

// Belief is a self-limiting assumption a user is working through.
type Belief struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Statement        string    `json:"statement"`
	Status           string    `json:"status"`
	FunctionalBelief *string   `json:"functionalBelief"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BeliefOrigin is one question/answer pair exploring where a belief came from.
type BeliefOrigin struct {
	ID        string    `json:"id"`
	BeliefID  string    `json:"beliefId"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// Affirmation is a saved affirmation tied to a belief.
type Affirmation struct {
	ID            string    `json:"id"`
	BeliefID      string    `json:"beliefId"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	IsAIGenerated bool      `json:"isAiGenerated"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeliefRepository is the port for belief persistence.
type BeliefRepository interface {
	CreateBelief(ctx context.Context, b *Belief) error
	GetBelief(ctx context.Context, userID, id string) (*Belief, error)
	// ListBeliefs returns the user's beliefs, newest first.
	ListBeliefs(ctx context.Context, userID string) ([]Belief, error)
	UpdateBelief(ctx context.Context, b *Belief) error
	DeleteBelief(ctx context.Context, userID, id string) error
}

// OriginRepository is the port for belief-origin persistence.
type OriginRepository interface {
	CreateOrigin(ctx context.Context, o *BeliefOrigin) error
	// ListOrigins returns a belief's origins, oldest first.
	ListOrigins(ctx context.Context, beliefID string) ([]BeliefOrigin, error)
	// ListUserOrigins returns all origins across the user's beliefs.
	ListUserOrigins(ctx context.Context, userID string) ([]BeliefOrigin, error)
	DeleteOrigin(ctx context.Context, userID, id string) error
}

// AffirmationRepository is the port for affirmation persistence.
type AffirmationRepository interface {
	CreateAffirmation(ctx context.Context, a *Affirmation) error
	// ListBeliefAffirmations returns a belief's affirmations, newest first.
	ListBeliefAffirmations(ctx context.Context, userID, beliefID string) ([]Affirmation, error)
	ListUserAffirmations(ctx context.Context, userID string) ([]Affirmation, error)
	DeleteAffirmation(ctx context.Context, userID, id string) error
}
