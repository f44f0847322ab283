package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"innerlight/internal/domain"

	"github.com/google/uuid"
)

// VisionService encapsulates the life-vision use cases.
type VisionService struct {
	visions domain.VisionRepository
}

// NewVisionService creates a VisionService backed by the given repository.
func NewVisionService(visions domain.VisionRepository) *VisionService {
	return &VisionService{visions: visions}
}

// SaveVision stores a new life vision.
func (s *VisionService) SaveVision(ctx context.Context, userID string, title *string, content string) (*domain.LifeVision, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("vision content is required")
	}

	now := time.Now()
	v := &domain.LifeVision{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     trimmedOrNil(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.visions.CreateVision(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListVisions returns the user's visions, newest first.
func (s *VisionService) ListVisions(ctx context.Context, userID string) ([]domain.LifeVision, error) {
	return s.visions.ListVisions(ctx, userID)
}

// UpdateVision replaces a vision's title and content.
func (s *VisionService) UpdateVision(ctx context.Context, userID, visionID string, title *string, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errors.New("vision content is required")
	}

	v, err := s.visions.GetVision(ctx, userID, visionID)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrNotFound
	}

	v.Title = trimmedOrNil(title)
	v.Content = content
	v.UpdatedAt = time.Now()
	return s.visions.UpdateVision(ctx, v)
}

// DeleteVision removes one vision.
func (s *VisionService) DeleteVision(ctx context.Context, userID, visionID string) error {
	return s.visions.DeleteVision(ctx, userID, visionID)
}
