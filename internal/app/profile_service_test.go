package app_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"innerlight/internal/adapter/memory"
	"innerlight/internal/app"
	"innerlight/internal/domain"
)

func strptr(s string) *string { return &s }

func seedUser(t *testing.T, db *memory.DB) *domain.User {
	t.Helper()
	now := time.Now()
	user := &domain.User{
		ID:        "u1",
		Email:     "a@example.com",
		Name:      strptr("Ada"),
		Gender:    strptr("female"),
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestBuildProfileAndContext(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	user := seedUser(t, db)

	base := time.Now().Add(-time.Hour)
	belief := &domain.Belief{
		ID:               "b1",
		UserID:           user.ID,
		Statement:        "I am not enough",
		Status:           domain.BeliefActive,
		FunctionalBelief: strptr("I am whole as I am"),
		CreatedAt:        base,
		UpdatedAt:        base,
	}
	if err := db.CreateBelief(ctx, belief); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateOrigin(ctx, &domain.BeliefOrigin{
		ID: "o1", BeliefID: belief.ID,
		Question:  "Who told you this?",
		Response:  "A teacher, when I was seven.",
		CreatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateAffirmation(ctx, &domain.Affirmation{
		ID: "af1", BeliefID: belief.ID, UserID: user.ID,
		Content: "I bring something no one else can", IsAIGenerated: true,
		CreatedAt: base, UpdatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateStory(ctx, &domain.Story{
		ID: "st1", BeliefID: belief.ID, UserID: user.ID,
		Title: strptr("The Cartographer"), Content: "...",
		CreatedAt: base, UpdatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateStory(ctx, &domain.Story{
		ID: "st2", BeliefID: belief.ID, UserID: user.ID,
		Content:   "untitled story",
		CreatedAt: base, UpdatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 12; i++ {
		if err := db.CreateEntry(ctx, &domain.JournalEntry{
			ID:        fmt.Sprintf("e%d", i),
			UserID:    user.ID,
			Content:   fmt.Sprintf("entry %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatal(err)
		}
	}

	svc := app.NewProfileService(db, db, db, db, db, db)
	profile, err := svc.BuildProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}

	if len(profile.JournalExcerpts) != 10 {
		t.Errorf("journal excerpts = %d, want 10", len(profile.JournalExcerpts))
	}
	if profile.JournalExcerpts[0] != "entry 11" {
		t.Errorf("first excerpt = %q, want newest", profile.JournalExcerpts[0])
	}
	if len(profile.StoryTitles) != 1 || profile.StoryTitles[0] != "The Cartographer" {
		t.Errorf("story titles = %v, untitled must be excluded", profile.StoryTitles)
	}
	if len(profile.Beliefs) != 1 || len(profile.Beliefs[0].Origins) != 1 {
		t.Fatalf("beliefs = %+v", profile.Beliefs)
	}
	if !profile.GenderIs("female") || profile.GenderIs("male") {
		t.Error("GenderIs misreports")
	}

	text := profile.Context()
	for _, want := range []string{
		"Name: Ada",
		"Gender: female",
		"── ALL IDENTIFIED NEGATIVE BELIEFS ──",
		`• "I am not enough" [active]`,
		`  → Moving toward: "I am whole as I am"`,
		"  Origins:",
		"    Q: Who told you this?",
		"    A: A teacher, when I was seven.",
		"── JOURNAL ENTRIES (emotional landscape) ──",
		`"entry 11"`,
		"---",
		"── EXISTING AFFIRMATIONS ──",
		"• I bring something no one else can",
		"── PREVIOUS STORIES (avoid repeating themes) ──",
		"• The Cartographer",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("context missing %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "entry 0") || strings.Contains(text, "entry 1\"") {
		t.Error("context contains excerpts beyond the newest ten")
	}
}

func TestBuildProfileEmptyUser(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	user := seedUser(t, db)

	svc := app.NewProfileService(db, db, db, db, db, db)
	profile, err := svc.BuildProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}

	text := profile.Context()
	if strings.Contains(text, "BELIEFS") || strings.Contains(text, "JOURNAL") {
		t.Errorf("empty profile renders sections: %q", text)
	}
	if !strings.Contains(text, "Name: Ada") {
		t.Errorf("identity missing: %q", text)
	}
}

func TestBuildProfileUnknownUser(t *testing.T) {
	db := memory.New()
	svc := app.NewProfileService(db, db, db, db, db, db)
	if _, err := svc.BuildProfile(context.Background(), "missing"); err != app.ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
