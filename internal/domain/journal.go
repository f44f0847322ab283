package domain

import (
	"context"
	"time"
)

// JournalEntry is one free-text journal record, optionally annotated with
// AI-generated insights.
type JournalEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	Prompt     *string   `json:"prompt"`
	AIInsights *string   `json:"aiInsights"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Reflection is a short user note attached to a journal entry or a belief.
type Reflection struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	BeliefID       *string   `json:"beliefId"`
	JournalEntryID *string   `json:"journalEntryId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// JournalRepository is the port for journal persistence.
type JournalRepository interface {
	CreateEntry(ctx context.Context, e *JournalEntry) error
	GetEntry(ctx context.Context, userID, id string) (*JournalEntry, error)
	ListEntries(ctx context.Context, userID string) ([]JournalEntry, error)
	// ListRecentExcerpts returns the newest entry bodies, newest first.
	ListRecentExcerpts(ctx context.Context, userID string, limit int) ([]string, error)
	UpdateEntry(ctx context.Context, e *JournalEntry) error
	SetInsights(ctx context.Context, userID, id, insights string, updatedAt time.Time) error
	DeleteEntry(ctx context.Context, userID, id string) error
	LinkBelief(ctx context.Context, entryID, beliefID string) error
	// ListEntryBeliefs returns the beliefs linked to a journal entry.
	ListEntryBeliefs(ctx context.Context, userID, entryID string) ([]Belief, error)
}

// ReflectionRepository is the port for reflection persistence.
type ReflectionRepository interface {
	CreateReflection(ctx context.Context, r *Reflection) error
	ListEntryReflections(ctx context.Context, userID, entryID string) ([]Reflection, error)
}
