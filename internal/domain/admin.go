package domain

import (
	"context"
	"time"
)

// UserActivity aggregates a single user's footprint for the admin views.
type UserActivity struct {
	Entries        int            `json:"entries"`
	LastEntryAt    *time.Time     `json:"lastEntryAt"`
	BeliefsByState map[string]int `json:"beliefsByStatus"`
	Stories        int            `json:"stories"`
	Affirmations   int            `json:"affirmations"`
	Reflections    int            `json:"reflections"`
	Visions        int            `json:"visions"`
	ActiveSessions int            `json:"activeSessions"`
}

// UserCounts is one row of the admin overview table.
type UserCounts struct {
	User           User `json:"user"`
	Entries        int  `json:"entries"`
	Beliefs        int  `json:"beliefs"`
	Stories        int  `json:"stories"`
	ActiveSessions int  `json:"activeSessions"`
}

// StatsRepository is the port for the admin aggregation queries.
type StatsRepository interface {
	// CountsByUser returns one row per user, oldest account first.
	CountsByUser(ctx context.Context, now time.Time) ([]UserCounts, error)
	UserActivity(ctx context.Context, userID string, now time.Time) (*UserActivity, error)
}
