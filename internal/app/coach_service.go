package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"innerlight/internal/domain"

	"github.com/google/uuid"
)

// Message is one role-tagged message sent to the completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest carries the messages and generation parameters for one
// completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	// JSONObject asks the service for structured-JSON output.
	JSONObject bool
}

// CompletionClient is the port for the external text-completion service.
// Stream returns a lazy, finite, non-restartable sequence of text fragments;
// both channels close when the upstream sequence ends or errors.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Stream(ctx context.Context, req CompletionRequest) (<-chan string, <-chan error)
}

// CoachService implements the AI-backed transformation workflow: belief
// extraction, origin inquiry, reframing, affirmations, insights, and the
// streamed story/vision generators.
type CoachService struct {
	ai       CompletionClient
	profiles *ProfileService
	journal  domain.JournalRepository
	feedback domain.FeedbackRepository
}

// NewCoachService creates a CoachService wired to the completion client.
func NewCoachService(ai CompletionClient, profiles *ProfileService, journal domain.JournalRepository, feedback domain.FeedbackRepository) *CoachService {
	return &CoachService{ai: ai, profiles: profiles, journal: journal, feedback: feedback}
}

// ExtractBeliefs pulls the limiting beliefs hidden in a piece of journal
// text. Returns an empty list when the model finds none or returns something
// unparseable.
func (s *CoachService) ExtractBeliefs(ctx context.Context, text string) ([]string, error) {
	out, err := s.ai.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: extractBeliefsPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.3,
		JSONObject:  true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Beliefs []string `json:"beliefs"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return []string{}, nil
	}
	if parsed.Beliefs == nil {
		return []string{}, nil
	}
	return parsed.Beliefs, nil
}

// OriginInquiry returns a short guiding reflection on the remembered source
// of a belief, given the answers collected so far.
func (s *CoachService) OriginInquiry(ctx context.Context, userID, belief string, answered []OriginAnswer) (string, error) {
	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	responseContext := formatOrigins(answered)
	if responseContext == "" {
		responseContext = "None yet - they are just beginning."
	}

	return s.ai.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: originInquiryPrompt(profile)},
			{Role: "user", Content: "FULL CONTEXT:\n" + profile.Context() +
				"\n\nSPECIFIC BELIEF BEING EXPLORED: \"" + belief + "\"" +
				"\n\nRESPONSES SO FAR:\n" + responseContext +
				"\n\nProvide a gentle, insightful reflection."},
		},
		Temperature: 0.7,
	})
}

// FunctionalBelief crafts the replacement belief the user is working toward.
func (s *CoachService) FunctionalBelief(ctx context.Context, userID, belief string, origins []OriginAnswer) (string, error) {
	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	user := "FULL CONTEXT:\n" + profile.Context() +
		"\n\nOLD BELIEF TO REPLACE: \"" + belief + "\"\n"
	if block := formatOrigins(origins); block != "" {
		user += "\nOrigins:\n" + block + "\n"
	}
	user += "\nWrite a new functional belief. Just the belief itself, nothing else."

	return s.ai.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: functionalBeliefPrompt},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
}

// Affirmation writes a personalized affirmation countering a belief.
func (s *CoachService) Affirmation(ctx context.Context, userID, belief string, origins []OriginAnswer, functionalBelief *string) (string, error) {
	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	user := "FULL CONTEXT OF THIS PERSON:\n" + profile.Context() +
		"\n\nTARGET BELIEF TO COUNTER: \"" + belief + "\"\n"
	if block := formatOrigins(origins); block != "" {
		user += "\nOrigins of this specific belief:\n" + block + "\n"
	}
	if functionalBelief != nil && *functionalBelief != "" {
		user += "\nThey are moving toward: \"" + *functionalBelief + "\"\n"
	}
	user += "\nWrite a deeply personal affirmation. This person will read it daily. Make it count."

	return s.ai.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: affirmationPrompt(profile)},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
}

// JournalInsights generates insights for a journal entry and persists them
// onto the entry. Returns the generated text.
func (s *CoachService) JournalInsights(ctx context.Context, userID, entryID string) (string, error) {
	entry, err := s.journal.GetEntry(ctx, userID, entryID)
	if err != nil {
		return "", err
	}
	if entry == nil {
		return "", ErrNotFound
	}

	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	insights, err := s.ai.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: journalInsightsPrompt},
			{Role: "user", Content: "FULL CONTEXT:\n" + profile.Context() +
				"\n\nNEW JOURNAL ENTRY:\n" + entry.Content +
				"\n\nWhat do you see?"},
		},
		Temperature: 0.6,
	})
	if err != nil {
		return "", err
	}

	if err := s.journal.SetInsights(ctx, userID, entryID, insights, time.Now()); err != nil {
		return "", err
	}
	return insights, nil
}

// StreamStory generates a mythic story from the whole profile, delivered as
// an incremental fragment stream.
func (s *CoachService) StreamStory(ctx context.Context, userID string) (<-chan string, <-chan error, error) {
	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	fragments, errc := s.ai.Stream(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: storyPrompt(profile)},
			{Role: "user", Content: "THE COMPLETE INNER LANDSCAPE OF THIS PERSON:\n" + profile.Context() +
				"\n\nWrite their parable. Make it personal. Make it beautiful. Make it true."},
		},
		Temperature: 0.9,
		JSONObject:  true,
	})
	return fragments, errc, nil
}

// StreamVision generates the first-person life vision as a fragment stream.
func (s *CoachService) StreamVision(ctx context.Context, userID string) (<-chan string, <-chan error, error) {
	profile, err := s.profiles.BuildProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	fragments, errc := s.ai.Stream(ctx, CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: visionPrompt(profile)},
			{Role: "user", Content: "THE COMPLETE INNER LANDSCAPE OF THIS PERSON:\n" + profile.Context() +
				"\n\nWrite their New Life Vision. Make it so real they can feel it. Make it so personal they cry reading it."},
		},
		Temperature: 0.85,
		JSONObject:  true,
	})
	return fragments, errc, nil
}

// RecordFeedback stores a user's reaction to a piece of AI output.
func (s *CoachService) RecordFeedback(ctx context.Context, userID, sourceType, sourceID, aiOutput, feedback string) error {
	feedback = strings.TrimSpace(feedback)
	if sourceType == "" || sourceID == "" || aiOutput == "" || feedback == "" {
		return errors.New("all fields are required")
	}
	return s.feedback.CreateFeedback(ctx, &domain.AIFeedback{
		ID:         uuid.NewString(),
		UserID:     userID,
		SourceType: sourceType,
		SourceID:   sourceID,
		AIOutput:   aiOutput,
		Feedback:   feedback,
		CreatedAt:  time.Now(),
	})
}

func formatOrigins(origins []OriginAnswer) string {
	parts := make([]string, 0, len(origins))
	for _, o := range origins {
		parts = append(parts, "Q: "+o.Question+"\nA: "+o.Response)
	}
	return strings.Join(parts, "\n\n")
}
