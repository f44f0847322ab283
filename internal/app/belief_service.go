package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"innerlight/internal/domain"

	"github.com/google/uuid"
)

// OriginQuestions is the fixed inquiry sequence offered for every belief.
var OriginQuestions = []string{
	"When do you remember first feeling this? Is there a specific age or moment?",
	"Is there a specific memory attached to this belief? What happened?",
	"Did someone say or imply this to you? Who?",
	"Did you infer this belief from an experience, or was it told to you directly?",
	"Does the origin feel clear, vague, or completely forgotten?",
	"What emotion is most tied to this belief? Where do you feel it in your body?",
	"How did this belief once try to protect you? What was it keeping you safe from?",
	"If this belief had a voice, whose voice would it sound like?",
}

// BeliefService encapsulates the belief-transformation workflow state:
// beliefs, their origins, affirmations, and stories.
type BeliefService struct {
	beliefs      domain.BeliefRepository
	origins      domain.OriginRepository
	affirmations domain.AffirmationRepository
	stories      domain.StoryRepository
	journal      domain.JournalRepository
}

// NewBeliefService creates a BeliefService backed by the given repositories.
func NewBeliefService(
	beliefs domain.BeliefRepository,
	origins domain.OriginRepository,
	affirmations domain.AffirmationRepository,
	stories domain.StoryRepository,
	journal domain.JournalRepository,
) *BeliefService {
	return &BeliefService{
		beliefs:      beliefs,
		origins:      origins,
		affirmations: affirmations,
		stories:      stories,
		journal:      journal,
	}
}

// CreateBelief records a new belief, optionally linked to the journal entry
// it was extracted from.
func (s *BeliefService) CreateBelief(ctx context.Context, userID, statement string, entryID *string) (*domain.Belief, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return nil, errors.New("please enter a belief statement")
	}

	now := time.Now()
	b := &domain.Belief{
		ID:        uuid.NewString(),
		UserID:    userID,
		Statement: statement,
		Status:    domain.BeliefActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.beliefs.CreateBelief(ctx, b); err != nil {
		return nil, err
	}

	if entryID != nil && *entryID != "" {
		entry, err := s.journal.GetEntry(ctx, userID, *entryID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			if err := s.journal.LinkBelief(ctx, entry.ID, b.ID); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// GetBelief returns one of the user's beliefs.
func (s *BeliefService) GetBelief(ctx context.Context, userID, id string) (*domain.Belief, error) {
	b, err := s.beliefs.GetBelief(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListBeliefs returns the user's beliefs, newest first.
func (s *BeliefService) ListBeliefs(ctx context.Context, userID string) ([]domain.Belief, error) {
	return s.beliefs.ListBeliefs(ctx, userID)
}

// UpdateBelief applies the provided fields; nil fields are left untouched,
// except FunctionalBelief which is cleared when set to an empty string.
func (s *BeliefService) UpdateBelief(ctx context.Context, userID, id string, statement, status, functionalBelief *string) (*domain.Belief, error) {
	b, err := s.beliefs.GetBelief(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if statement != nil {
		trimmed := strings.TrimSpace(*statement)
		if trimmed == "" {
			return nil, errors.New("please enter a belief statement")
		}
		b.Statement = trimmed
	}
	if status != nil {
		if !domain.ValidBeliefStatus(*status) {
			return nil, errors.New("invalid belief status")
		}
		b.Status = *status
	}
	if functionalBelief != nil {
		trimmed := strings.TrimSpace(*functionalBelief)
		if trimmed == "" {
			b.FunctionalBelief = nil
		} else {
			b.FunctionalBelief = &trimmed
		}
	}

	b.UpdatedAt = time.Now()
	if err := s.beliefs.UpdateBelief(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBelief removes a belief; origins, affirmations, and stories cascade.
func (s *BeliefService) DeleteBelief(ctx context.Context, userID, id string) error {
	return s.beliefs.DeleteBelief(ctx, userID, id)
}

// AnswerOrigin records one question/response pair for a belief.
func (s *BeliefService) AnswerOrigin(ctx context.Context, userID, beliefID, question, response string) (*domain.BeliefOrigin, error) {
	response = strings.TrimSpace(response)
	if question == "" || response == "" {
		return nil, errors.New("please write a response")
	}

	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, err
	}

	o := &domain.BeliefOrigin{
		ID:        uuid.NewString(),
		BeliefID:  beliefID,
		Question:  question,
		Response:  response,
		CreatedAt: time.Now(),
	}
	if err := s.origins.CreateOrigin(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrigins returns a belief's answered origins, oldest first, plus the
// questions not yet answered.
func (s *BeliefService) ListOrigins(ctx context.Context, userID, beliefID string) ([]domain.BeliefOrigin, []string, error) {
	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, nil, err
	}

	origins, err := s.origins.ListOrigins(ctx, beliefID)
	if err != nil {
		return nil, nil, err
	}

	answered := make(map[string]bool, len(origins))
	for _, o := range origins {
		answered[o.Question] = true
	}
	var remaining []string
	for _, q := range OriginQuestions {
		if !answered[q] {
			remaining = append(remaining, q)
		}
	}
	return origins, remaining, nil
}

// DeleteOrigin removes one answered origin.
func (s *BeliefService) DeleteOrigin(ctx context.Context, userID, originID string) error {
	return s.origins.DeleteOrigin(ctx, userID, originID)
}

// AddAffirmation saves an affirmation against a belief.
func (s *BeliefService) AddAffirmation(ctx context.Context, userID, beliefID, content string, aiGenerated bool) (*domain.Affirmation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("affirmation cannot be empty")
	}

	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &domain.Affirmation{
		ID:            uuid.NewString(),
		BeliefID:      beliefID,
		UserID:        userID,
		Content:       content,
		IsAIGenerated: aiGenerated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.affirmations.CreateAffirmation(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAffirmations returns a belief's affirmations, newest first.
func (s *BeliefService) ListAffirmations(ctx context.Context, userID, beliefID string) ([]domain.Affirmation, error) {
	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, err
	}
	return s.affirmations.ListBeliefAffirmations(ctx, userID, beliefID)
}

// DeleteAffirmation removes one affirmation.
func (s *BeliefService) DeleteAffirmation(ctx context.Context, userID, affirmationID string) error {
	return s.affirmations.DeleteAffirmation(ctx, userID, affirmationID)
}

// SaveStory stores a generated or edited story against a belief.
func (s *BeliefService) SaveStory(ctx context.Context, userID, beliefID string, title *string, content string) (*domain.Story, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("story content is required")
	}

	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.Story{
		ID:        uuid.NewString(),
		BeliefID:  beliefID,
		UserID:    userID,
		Title:     trimmedOrNil(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stories.CreateStory(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ListStories returns a belief's stories, newest first.
func (s *BeliefService) ListStories(ctx context.Context, userID, beliefID string) ([]domain.Story, error) {
	if _, err := s.GetBelief(ctx, userID, beliefID); err != nil {
		return nil, err
	}
	return s.stories.ListBeliefStories(ctx, userID, beliefID)
}

// UpdateStory replaces a story's title and content.
func (s *BeliefService) UpdateStory(ctx context.Context, userID, storyID string, title *string, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errors.New("story content is required")
	}

	st, err := s.stories.GetStory(ctx, userID, storyID)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrNotFound
	}

	st.Title = trimmedOrNil(title)
	st.Content = content
	st.UpdatedAt = time.Now()
	return s.stories.UpdateStory(ctx, st)
}

// DeleteStory removes one story.
func (s *BeliefService) DeleteStory(ctx context.Context, userID, storyID string) error {
	return s.stories.DeleteStory(ctx, userID, storyID)
}

// LinkedBeliefs returns the beliefs extracted from a journal entry.
func (s *BeliefService) LinkedBeliefs(ctx context.Context, userID, entryID string) ([]domain.Belief, error) {
	return s.journal.ListEntryBeliefs(ctx, userID, entryID)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
