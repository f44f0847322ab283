package app

import (
	"context"
	"errors"
	"time"

	"innerlight/internal/domain"
)

// AdminOverview is the aggregate view for the admin dashboard.
type AdminOverview struct {
	Users []domain.UserCounts `json:"users"`
	Stats OverviewStats       `json:"stats"`
}

// OverviewStats are system-wide totals.
type OverviewStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalEntries int `json:"totalEntries"`
	TotalBeliefs int `json:"totalBeliefs"`
	TotalStories int `json:"totalStories"`
}

// AdminService implements the administrative use cases.
type AdminService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	stats    domain.StatsRepository
}

// NewAdminService creates an AdminService backed by the given repositories.
func NewAdminService(users domain.UserRepository, sessions domain.SessionRepository, stats domain.StatsRepository) *AdminService {
	return &AdminService{users: users, sessions: sessions, stats: stats}
}

// Overview returns per-user counts plus system totals.
func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	rows, err := s.stats.CountsByUser(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	overview := &AdminOverview{Users: rows}
	overview.Stats.TotalUsers = len(rows)
	for _, r := range rows {
		overview.Stats.TotalEntries += r.Entries
		overview.Stats.TotalBeliefs += r.Beliefs
		overview.Stats.TotalStories += r.Stories
	}
	return overview, nil
}

// UserDetail returns one user's record and activity summary.
func (s *AdminService) UserDetail(ctx context.Context, userID string) (*domain.User, *domain.UserActivity, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	activity, err := s.stats.UserActivity(ctx, userID, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return user, activity, nil
}

// ResetPassword rotates a user's credential and revokes every session they
// hold, forcing all their browsers to log in again.
func (s *AdminService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash, time.Now()); err != nil {
		return err
	}
	return s.sessions.DeleteUserSessions(ctx, userID)
}

// DeleteUser removes an account; all dependent rows cascade in the store.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.users.DeleteUser(ctx, userID)
}
