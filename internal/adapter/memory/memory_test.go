package memory

import (
	"context"
	"testing"
	"time"

	"innerlight/internal/domain"
)

func strptr(s string) *string { return &s }

func seed(t *testing.T) (*DB, context.Context) {
	t.Helper()
	db := New()
	ctx := context.Background()
	now := time.Now()

	if err := db.CreateUser(ctx, &domain.User{
		ID: "u1", Email: "a@example.com", Role: "user", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateSession(ctx, &domain.Session{
		ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateEntry(ctx, &domain.JournalEntry{
		ID: "e1", UserID: "u1", Content: "hello", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateBelief(ctx, &domain.Belief{
		ID: "b1", UserID: "u1", Statement: "I am stuck", Status: domain.BeliefActive,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateOrigin(ctx, &domain.BeliefOrigin{
		ID: "o1", BeliefID: "b1", Question: "q", Response: "a", CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateAffirmation(ctx, &domain.Affirmation{
		ID: "af1", BeliefID: "b1", UserID: "u1", Content: "x", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateStory(ctx, &domain.Story{
		ID: "st1", BeliefID: "b1", UserID: "u1", Title: strptr("T"), Content: "c",
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.LinkBelief(ctx, "e1", "b1"); err != nil {
		t.Fatal(err)
	}
	return db, ctx
}

func TestDeleteBeliefCascades(t *testing.T) {
	db, ctx := seed(t)

	if err := db.DeleteBelief(ctx, "u1", "b1"); err != nil {
		t.Fatal(err)
	}

	if origins, _ := db.ListOrigins(ctx, "b1"); len(origins) != 0 {
		t.Error("origins survived belief deletion")
	}
	if affirmations, _ := db.ListUserAffirmations(ctx, "u1"); len(affirmations) != 0 {
		t.Error("affirmations survived belief deletion")
	}
	if stories, _ := db.ListBeliefStories(ctx, "u1", "b1"); len(stories) != 0 {
		t.Error("stories survived belief deletion")
	}
	if linked, _ := db.ListEntryBeliefs(ctx, "u1", "e1"); len(linked) != 0 {
		t.Error("entry link survived belief deletion")
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db, ctx := seed(t)

	if err := db.DeleteUser(ctx, "u1"); err != nil {
		t.Fatal(err)
	}

	if s, _ := db.GetSession(ctx, "s1"); s != nil {
		t.Error("session survived user deletion")
	}
	if entries, _ := db.ListEntries(ctx, "u1"); len(entries) != 0 {
		t.Error("entries survived user deletion")
	}
	if beliefs, _ := db.ListBeliefs(ctx, "u1"); len(beliefs) != 0 {
		t.Error("beliefs survived user deletion")
	}
	if visions, _ := db.ListVisions(ctx, "u1"); len(visions) != 0 {
		t.Error("visions survived user deletion")
	}
}

func TestDeleteEntryRemovesLinksAndReflections(t *testing.T) {
	db, ctx := seed(t)

	entryID := "e1"
	if err := db.CreateReflection(ctx, &domain.Reflection{
		ID: "r1", UserID: "u1", JournalEntryID: &entryID, Content: "note", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteEntry(ctx, "u1", "e1"); err != nil {
		t.Fatal(err)
	}

	if reflections, _ := db.ListEntryReflections(ctx, "u1", "e1"); len(reflections) != 0 {
		t.Error("reflections survived entry deletion")
	}
	if beliefs, _ := db.ListBeliefs(ctx, "u1"); len(beliefs) != 1 {
		t.Error("belief should survive entry deletion")
	}
}

func TestListStoryTitlesExcludesUntitled(t *testing.T) {
	db, ctx := seed(t)
	now := time.Now()

	if err := db.CreateStory(ctx, &domain.Story{
		ID: "st2", BeliefID: "b1", UserID: "u1", Content: "untitled", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	titles, err := db.ListStoryTitles(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 1 || titles[0] != "T" {
		t.Errorf("titles = %v", titles)
	}
}

func TestCountsByUser(t *testing.T) {
	db, ctx := seed(t)

	counts, err := db.CountsByUser(ctx, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 {
		t.Fatalf("rows = %d", len(counts))
	}
	c := counts[0]
	if c.Entries != 1 || c.Beliefs != 1 || c.Stories != 1 || c.ActiveSessions != 1 {
		t.Errorf("counts = %+v", c)
	}
}

func TestUserActivity(t *testing.T) {
	db, ctx := seed(t)

	activity, err := db.UserActivity(ctx, "u1", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if activity.Entries != 1 || activity.LastEntryAt == nil {
		t.Errorf("entries = %+v", activity)
	}
	if activity.BeliefsByState[domain.BeliefActive] != 1 {
		t.Errorf("beliefs by status = %v", activity.BeliefsByState)
	}
	if activity.ActiveSessions != 1 {
		t.Errorf("active sessions = %d", activity.ActiveSessions)
	}
}
