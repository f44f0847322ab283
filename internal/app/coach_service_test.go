package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"innerlight/internal/adapter/memory"
	"innerlight/internal/app"
	"innerlight/internal/domain"
)

type fakeAI struct {
	completeFn func(ctx context.Context, req app.CompletionRequest) (string, error)
	streamFn   func(ctx context.Context, req app.CompletionRequest) (<-chan string, <-chan error)
}

func (f *fakeAI) Complete(ctx context.Context, req app.CompletionRequest) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, req)
	}
	return "", errors.New("no complete stub")
}

func (f *fakeAI) Stream(ctx context.Context, req app.CompletionRequest) (<-chan string, <-chan error) {
	if f.streamFn != nil {
		return f.streamFn(ctx, req)
	}
	fragments := make(chan string)
	errc := make(chan error, 1)
	close(fragments)
	close(errc)
	return fragments, errc
}

func newCoach(ai *fakeAI, db *memory.DB) *app.CoachService {
	profiles := app.NewProfileService(db, db, db, db, db, db)
	return app.NewCoachService(ai, profiles, db, db)
}

func TestExtractBeliefs(t *testing.T) {
	var captured app.CompletionRequest
	ai := &fakeAI{completeFn: func(ctx context.Context, req app.CompletionRequest) (string, error) {
		captured = req
		return `{"beliefs":["I always fail","I am unlovable"]}`, nil
	}}
	svc := newCoach(ai, memory.New())

	beliefs, err := svc.ExtractBeliefs(context.Background(), "I always fail at everything")
	if err != nil {
		t.Fatalf("ExtractBeliefs: %v", err)
	}
	if len(beliefs) != 2 || beliefs[0] != "I always fail" {
		t.Errorf("beliefs = %v", beliefs)
	}

	if !captured.JSONObject {
		t.Error("structured output not requested")
	}
	if captured.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[1].Content != "I always fail at everything" {
		t.Errorf("messages = %+v", captured.Messages)
	}
}

func TestExtractBeliefsUnparseable(t *testing.T) {
	ai := &fakeAI{completeFn: func(ctx context.Context, req app.CompletionRequest) (string, error) {
		return "sorry, I can't do that", nil
	}}
	svc := newCoach(ai, memory.New())

	beliefs, err := svc.ExtractBeliefs(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if beliefs == nil || len(beliefs) != 0 {
		t.Errorf("beliefs = %#v, want empty non-nil list", beliefs)
	}
}

func TestOriginInquiryDefaultResponses(t *testing.T) {
	db := memory.New()
	seedUser(t, db)

	var userMsg string
	ai := &fakeAI{completeFn: func(ctx context.Context, req app.CompletionRequest) (string, error) {
		userMsg = req.Messages[1].Content
		return "a gentle reflection", nil
	}}
	svc := newCoach(ai, db)

	out, err := svc.OriginInquiry(context.Background(), "u1", "I am not enough", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "a gentle reflection" {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(userMsg, "None yet - they are just beginning.") {
		t.Error("empty origins placeholder missing")
	}

	answered := []app.OriginAnswer{{Question: "Who?", Response: "My father."}}
	if _, err := svc.OriginInquiry(context.Background(), "u1", "I am not enough", answered); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(userMsg, "Q: Who?") || !strings.Contains(userMsg, "A: My father.") {
		t.Errorf("answered origins missing from prompt: %q", userMsg)
	}
}

func TestJournalInsightsPersists(t *testing.T) {
	db := memory.New()
	user := seedUser(t, db)
	now := time.Now()
	entry := &domain.JournalEntry{
		ID: "e1", UserID: user.ID, Content: "today was hard",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := db.CreateEntry(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	ai := &fakeAI{completeFn: func(ctx context.Context, req app.CompletionRequest) (string, error) {
		if req.Temperature != 0.6 {
			t.Errorf("temperature = %v, want 0.6", req.Temperature)
		}
		return "you are carrying a lot", nil
	}}
	svc := newCoach(ai, db)

	insights, err := svc.JournalInsights(context.Background(), user.ID, entry.ID)
	if err != nil {
		t.Fatalf("JournalInsights: %v", err)
	}
	if insights != "you are carrying a lot" {
		t.Errorf("insights = %q", insights)
	}

	stored, err := db.GetEntry(context.Background(), user.ID, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AIInsights == nil || *stored.AIInsights != insights {
		t.Error("insights not persisted onto the entry")
	}

	if _, err := svc.JournalInsights(context.Background(), user.ID, "missing"); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("missing entry error = %v, want ErrNotFound", err)
	}
}

func TestStreamStoryRelaysFragments(t *testing.T) {
	db := memory.New()
	seedUser(t, db)

	ai := &fakeAI{streamFn: func(ctx context.Context, req app.CompletionRequest) (<-chan string, <-chan error) {
		if req.Temperature != 0.9 || !req.JSONObject {
			t.Errorf("request = %+v", req)
		}
		fragments := make(chan string, 3)
		errc := make(chan error, 1)
		fragments <- "once "
		fragments <- "upon "
		fragments <- "a time"
		close(fragments)
		close(errc)
		return fragments, errc
	}}
	svc := newCoach(ai, db)

	fragments, errc, err := svc.StreamStory(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	for f := range fragments {
		sb.WriteString(f)
	}
	if err := <-errc; err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if sb.String() != "once upon a time" {
		t.Errorf("streamed = %q", sb.String())
	}
}

func TestRecordFeedbackValidation(t *testing.T) {
	db := memory.New()
	seedUser(t, db)
	svc := newCoach(&fakeAI{}, db)
	ctx := context.Background()

	if err := svc.RecordFeedback(ctx, "u1", "", "s1", "output", "too generic"); err == nil {
		t.Error("missing source type accepted")
	}
	if err := svc.RecordFeedback(ctx, "u1", "affirmation", "s1", "output", "   "); err == nil {
		t.Error("blank feedback accepted")
	}
	if err := svc.RecordFeedback(ctx, "u1", "affirmation", "s1", "output", "too generic"); err != nil {
		t.Errorf("valid feedback rejected: %v", err)
	}
}
