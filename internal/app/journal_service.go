package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"innerlight/internal/domain"

	"github.com/google/uuid"
)

// JournalService encapsulates the journal use cases.
type JournalService struct {
	entries     domain.JournalRepository
	reflections domain.ReflectionRepository
}

// NewJournalService creates a JournalService backed by the given repositories.
func NewJournalService(entries domain.JournalRepository, reflections domain.ReflectionRepository) *JournalService {
	return &JournalService{entries: entries, reflections: reflections}
}

// CreateEntry stores a new journal entry.
func (s *JournalService) CreateEntry(ctx context.Context, userID, content string, prompt *string) (*domain.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content cannot be empty")
	}

	now := time.Now()
	entry := &domain.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Prompt:    prompt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry returns one of the user's entries.
func (s *JournalService) GetEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	entry, err := s.entries.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// ListEntries returns the user's entries, newest first.
func (s *JournalService) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	return s.entries.ListEntries(ctx, userID)
}

// UpdateEntry replaces an entry's content.
func (s *JournalService) UpdateEntry(ctx context.Context, userID, id, content string) (*domain.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("content cannot be empty")
	}

	entry, err := s.entries.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	entry.Content = content
	entry.UpdatedAt = time.Now()
	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry; dependent rows cascade in the store.
func (s *JournalService) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.entries.DeleteEntry(ctx, userID, id)
}

// AddReflection attaches a short note to a journal entry.
func (s *JournalService) AddReflection(ctx context.Context, userID, entryID, content string) (*domain.Reflection, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("reflection cannot be empty")
	}

	entry, err := s.entries.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	r := &domain.Reflection{
		ID:             uuid.NewString(),
		UserID:         userID,
		JournalEntryID: &entryID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.reflections.CreateReflection(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListReflections returns an entry's reflections, newest first.
func (s *JournalService) ListReflections(ctx context.Context, userID, entryID string) ([]domain.Reflection, error) {
	return s.reflections.ListEntryReflections(ctx, userID, entryID)
}
