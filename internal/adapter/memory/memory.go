// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"innerlight/internal/domain"
)

// DB implements every domain repository in process memory.
type DB struct {
	mu           sync.Mutex
	users        []*domain.User
	sessions     map[string]*domain.Session
	entries      []*domain.JournalEntry
	reflections  []*domain.Reflection
	beliefs      []*domain.Belief
	origins      []*domain.BeliefOrigin
	affirmations []*domain.Affirmation
	stories      []*domain.Story
	visions      []*domain.LifeVision
	feedback     []*domain.AIFeedback
	entryBeliefs map[string]map[string]bool
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		sessions:     make(map[string]*domain.Session),
		entryBeliefs: make(map[string]map[string]bool),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)
var _ domain.JournalRepository = (*DB)(nil)
var _ domain.ReflectionRepository = (*DB)(nil)
var _ domain.BeliefRepository = (*DB)(nil)
var _ domain.OriginRepository = (*DB)(nil)
var _ domain.AffirmationRepository = (*DB)(nil)
var _ domain.StoryRepository = (*DB)(nil)
var _ domain.VisionRepository = (*DB)(nil)
var _ domain.FeedbackRepository = (*DB)(nil)
var _ domain.StatsRepository = (*DB)(nil)

// --- UserRepository ---

// CreateUser adds a new user; the email must be unused.
func (db *DB) CreateUser(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.Email == u.Email {
			return errors.New("email already registered")
		}
	}
	clone := *u
	db.users = append(db.users, &clone)
	return nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// UpdateUser saves a user's profile fields; the password hash is untouched.
func (db *DB) UpdateUser(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.ID == u.ID {
			existing.Email = u.Email
			existing.Name = u.Name
			existing.Gender = u.Gender
			existing.DateOfBirth = u.DateOfBirth
			existing.PlaceOfBirth = u.PlaceOfBirth
			existing.Role = u.Role
			existing.UpdatedAt = u.UpdatedAt
			return nil
		}
	}
	return errors.New("user not found")
}

// UpdatePasswordHash replaces a user's stored credential.
func (db *DB) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.UpdatedAt = updatedAt
			return nil
		}
	}
	return errors.New("user not found")
}

// DeleteUser removes a user and everything they own.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = filter(db.users, func(u *domain.User) bool { return u.ID != id })
	for sid, s := range db.sessions {
		if s.UserID == id {
			delete(db.sessions, sid)
		}
	}
	for _, e := range db.entries {
		if e.UserID == id {
			delete(db.entryBeliefs, e.ID)
		}
	}
	db.entries = filter(db.entries, func(e *domain.JournalEntry) bool { return e.UserID != id })
	db.reflections = filter(db.reflections, func(r *domain.Reflection) bool { return r.UserID != id })
	for _, b := range db.beliefs {
		if b.UserID == id {
			db.removeBeliefChildren(b.ID)
		}
	}
	db.beliefs = filter(db.beliefs, func(b *domain.Belief) bool { return b.UserID != id })
	db.affirmations = filter(db.affirmations, func(a *domain.Affirmation) bool { return a.UserID != id })
	db.stories = filter(db.stories, func(s *domain.Story) bool { return s.UserID != id })
	db.visions = filter(db.visions, func(v *domain.LifeVision) bool { return v.UserID != id })
	db.feedback = filter(db.feedback, func(f *domain.AIFeedback) bool { return f.UserID != id })
	return nil
}

// ListUsers returns every user, oldest first.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	users := make([]domain.User, 0, len(db.users))
	for _, u := range db.users {
		users = append(users, *u)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// --- SessionRepository ---

// CreateSession stores a session.
func (db *DB) CreateSession(ctx context.Context, s *domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *s
	db.sessions[s.ID] = &clone
	return nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

// UpdateSessionExpiry pushes a session's expiry forward.
func (db *DB) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

// DeleteSession removes a session; missing sessions are a no-op.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.sessions, id)
	return nil
}

// DeleteUserSessions removes every session a user holds.
func (db *DB) DeleteUserSessions(ctx context.Context, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for id, s := range db.sessions {
		if s.UserID == userID {
			delete(db.sessions, id)
		}
	}
	return nil
}

// --- JournalRepository ---

// CreateEntry stores a journal entry.
func (db *DB) CreateEntry(ctx context.Context, e *domain.JournalEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *e
	db.entries = append(db.entries, &clone)
	return nil
}

// GetEntry retrieves one of the user's entries.
func (db *DB) GetEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.ID == id && e.UserID == userID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

// ListEntries returns the user's entries, newest first.
func (db *DB) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var entries []domain.JournalEntry
	for _, e := range db.entries {
		if e.UserID == userID {
			entries = append(entries, *e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

// ListRecentExcerpts returns the newest entry bodies, newest first.
func (db *DB) ListRecentExcerpts(ctx context.Context, userID string, limit int) ([]string, error) {
	entries, err := db.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	var excerpts []string
	for _, e := range entries {
		excerpts = append(excerpts, e.Content)
	}
	return excerpts, nil
}

// UpdateEntry saves an entry's content and prompt.
func (db *DB) UpdateEntry(ctx context.Context, e *domain.JournalEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.entries {
		if existing.ID == e.ID && existing.UserID == e.UserID {
			existing.Content = e.Content
			existing.Prompt = e.Prompt
			existing.UpdatedAt = e.UpdatedAt
			return nil
		}
	}
	return nil
}

// SetInsights attaches generated insights to an entry.
func (db *DB) SetInsights(ctx context.Context, userID, id, insights string, updatedAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.ID == id && e.UserID == userID {
			e.AIInsights = &insights
			e.UpdatedAt = updatedAt
			return nil
		}
	}
	return nil
}

// DeleteEntry removes an entry along with its links and reflections.
func (db *DB) DeleteEntry(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries = filter(db.entries, func(e *domain.JournalEntry) bool {
		return !(e.ID == id && e.UserID == userID)
	})
	delete(db.entryBeliefs, id)
	db.reflections = filter(db.reflections, func(r *domain.Reflection) bool {
		return r.JournalEntryID == nil || *r.JournalEntryID != id
	})
	return nil
}

// LinkBelief records that a belief was extracted from an entry.
func (db *DB) LinkBelief(ctx context.Context, entryID, beliefID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	set, ok := db.entryBeliefs[entryID]
	if !ok {
		set = make(map[string]bool)
		db.entryBeliefs[entryID] = set
	}
	set[beliefID] = true
	return nil
}

// ListEntryBeliefs returns the beliefs linked to a journal entry.
func (db *DB) ListEntryBeliefs(ctx context.Context, userID, entryID string) ([]domain.Belief, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	set := db.entryBeliefs[entryID]
	var beliefs []domain.Belief
	for _, b := range db.beliefs {
		if b.UserID == userID && set[b.ID] {
			beliefs = append(beliefs, *b)
		}
	}
	sort.SliceStable(beliefs, func(i, j int) bool { return beliefs[i].CreatedAt.After(beliefs[j].CreatedAt) })
	return beliefs, nil
}

// --- ReflectionRepository ---

// CreateReflection stores a reflection.
func (db *DB) CreateReflection(ctx context.Context, r *domain.Reflection) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *r
	db.reflections = append(db.reflections, &clone)
	return nil
}

// ListEntryReflections returns an entry's reflections, oldest first.
func (db *DB) ListEntryReflections(ctx context.Context, userID, entryID string) ([]domain.Reflection, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var reflections []domain.Reflection
	for _, r := range db.reflections {
		if r.UserID == userID && r.JournalEntryID != nil && *r.JournalEntryID == entryID {
			reflections = append(reflections, *r)
		}
	}
	sort.SliceStable(reflections, func(i, j int) bool { return reflections[i].CreatedAt.Before(reflections[j].CreatedAt) })
	return reflections, nil
}

// --- BeliefRepository ---

// CreateBelief stores a belief.
func (db *DB) CreateBelief(ctx context.Context, b *domain.Belief) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *b
	db.beliefs = append(db.beliefs, &clone)
	return nil
}

// GetBelief retrieves one of the user's beliefs.
func (db *DB) GetBelief(ctx context.Context, userID, id string) (*domain.Belief, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, b := range db.beliefs {
		if b.ID == id && b.UserID == userID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

// ListBeliefs returns the user's beliefs, newest first.
func (db *DB) ListBeliefs(ctx context.Context, userID string) ([]domain.Belief, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var beliefs []domain.Belief
	for _, b := range db.beliefs {
		if b.UserID == userID {
			beliefs = append(beliefs, *b)
		}
	}
	sort.SliceStable(beliefs, func(i, j int) bool { return beliefs[i].CreatedAt.After(beliefs[j].CreatedAt) })
	return beliefs, nil
}

// UpdateBelief saves a belief's statement, status, and functional rewrite.
func (db *DB) UpdateBelief(ctx context.Context, b *domain.Belief) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.beliefs {
		if existing.ID == b.ID && existing.UserID == b.UserID {
			existing.Statement = b.Statement
			existing.Status = b.Status
			existing.FunctionalBelief = b.FunctionalBelief
			existing.UpdatedAt = b.UpdatedAt
			return nil
		}
	}
	return nil
}

// DeleteBelief removes a belief and its origins, affirmations, and stories.
func (db *DB) DeleteBelief(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.beliefs = filter(db.beliefs, func(b *domain.Belief) bool {
		return !(b.ID == id && b.UserID == userID)
	})
	db.removeBeliefChildren(id)
	return nil
}

// removeBeliefChildren drops everything hanging off a belief. Caller holds
// the lock.
func (db *DB) removeBeliefChildren(beliefID string) {
	db.origins = filter(db.origins, func(o *domain.BeliefOrigin) bool { return o.BeliefID != beliefID })
	db.affirmations = filter(db.affirmations, func(a *domain.Affirmation) bool { return a.BeliefID != beliefID })
	db.stories = filter(db.stories, func(s *domain.Story) bool { return s.BeliefID != beliefID })
	db.reflections = filter(db.reflections, func(r *domain.Reflection) bool {
		return r.BeliefID == nil || *r.BeliefID != beliefID
	})
	for _, set := range db.entryBeliefs {
		delete(set, beliefID)
	}
}

// --- OriginRepository ---

// CreateOrigin stores one answered origin question.
func (db *DB) CreateOrigin(ctx context.Context, o *domain.BeliefOrigin) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *o
	db.origins = append(db.origins, &clone)
	return nil
}

// ListOrigins returns a belief's origins, oldest first.
func (db *DB) ListOrigins(ctx context.Context, beliefID string) ([]domain.BeliefOrigin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var origins []domain.BeliefOrigin
	for _, o := range db.origins {
		if o.BeliefID == beliefID {
			origins = append(origins, *o)
		}
	}
	sort.SliceStable(origins, func(i, j int) bool { return origins[i].CreatedAt.Before(origins[j].CreatedAt) })
	return origins, nil
}

// ListUserOrigins returns all origins across the user's beliefs.
func (db *DB) ListUserOrigins(ctx context.Context, userID string) ([]domain.BeliefOrigin, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	owned := make(map[string]bool)
	for _, b := range db.beliefs {
		if b.UserID == userID {
			owned[b.ID] = true
		}
	}
	var origins []domain.BeliefOrigin
	for _, o := range db.origins {
		if owned[o.BeliefID] {
			origins = append(origins, *o)
		}
	}
	sort.SliceStable(origins, func(i, j int) bool { return origins[i].CreatedAt.Before(origins[j].CreatedAt) })
	return origins, nil
}

// DeleteOrigin removes one origin, scoped to the user's beliefs.
func (db *DB) DeleteOrigin(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	owned := make(map[string]bool)
	for _, b := range db.beliefs {
		if b.UserID == userID {
			owned[b.ID] = true
		}
	}
	db.origins = filter(db.origins, func(o *domain.BeliefOrigin) bool {
		return !(o.ID == id && owned[o.BeliefID])
	})
	return nil
}

// --- AffirmationRepository ---

// CreateAffirmation stores an affirmation.
func (db *DB) CreateAffirmation(ctx context.Context, a *domain.Affirmation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *a
	db.affirmations = append(db.affirmations, &clone)
	return nil
}

// ListBeliefAffirmations returns a belief's affirmations, newest first.
func (db *DB) ListBeliefAffirmations(ctx context.Context, userID, beliefID string) ([]domain.Affirmation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var affirmations []domain.Affirmation
	for _, a := range db.affirmations {
		if a.UserID == userID && a.BeliefID == beliefID {
			affirmations = append(affirmations, *a)
		}
	}
	sort.SliceStable(affirmations, func(i, j int) bool { return affirmations[i].CreatedAt.After(affirmations[j].CreatedAt) })
	return affirmations, nil
}

// ListUserAffirmations returns all of the user's affirmations, newest first.
func (db *DB) ListUserAffirmations(ctx context.Context, userID string) ([]domain.Affirmation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var affirmations []domain.Affirmation
	for _, a := range db.affirmations {
		if a.UserID == userID {
			affirmations = append(affirmations, *a)
		}
	}
	sort.SliceStable(affirmations, func(i, j int) bool { return affirmations[i].CreatedAt.After(affirmations[j].CreatedAt) })
	return affirmations, nil
}

// DeleteAffirmation removes one affirmation.
func (db *DB) DeleteAffirmation(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.affirmations = filter(db.affirmations, func(a *domain.Affirmation) bool {
		return !(a.ID == id && a.UserID == userID)
	})
	return nil
}

// --- StoryRepository ---

// CreateStory stores a story.
func (db *DB) CreateStory(ctx context.Context, s *domain.Story) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *s
	db.stories = append(db.stories, &clone)
	return nil
}

// GetStory retrieves one of the user's stories.
func (db *DB) GetStory(ctx context.Context, userID, id string) (*domain.Story, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, s := range db.stories {
		if s.ID == id && s.UserID == userID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

// ListBeliefStories returns a belief's stories, newest first.
func (db *DB) ListBeliefStories(ctx context.Context, userID, beliefID string) ([]domain.Story, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var stories []domain.Story
	for _, s := range db.stories {
		if s.UserID == userID && s.BeliefID == beliefID {
			stories = append(stories, *s)
		}
	}
	sort.SliceStable(stories, func(i, j int) bool { return stories[i].CreatedAt.After(stories[j].CreatedAt) })
	return stories, nil
}

// ListStoryTitles returns the titles of the user's stories, untitled excluded.
func (db *DB) ListStoryTitles(ctx context.Context, userID string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var stories []*domain.Story
	for _, s := range db.stories {
		if s.UserID == userID && s.Title != nil && *s.Title != "" {
			stories = append(stories, s)
		}
	}
	sort.SliceStable(stories, func(i, j int) bool { return stories[i].CreatedAt.After(stories[j].CreatedAt) })
	var titles []string
	for _, s := range stories {
		titles = append(titles, *s.Title)
	}
	return titles, nil
}

// UpdateStory saves a story's title and content.
func (db *DB) UpdateStory(ctx context.Context, s *domain.Story) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.stories {
		if existing.ID == s.ID && existing.UserID == s.UserID {
			existing.Title = s.Title
			existing.Content = s.Content
			existing.UpdatedAt = s.UpdatedAt
			return nil
		}
	}
	return nil
}

// DeleteStory removes one story.
func (db *DB) DeleteStory(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.stories = filter(db.stories, func(s *domain.Story) bool {
		return !(s.ID == id && s.UserID == userID)
	})
	return nil
}

// --- VisionRepository ---

// CreateVision stores a life vision.
func (db *DB) CreateVision(ctx context.Context, v *domain.LifeVision) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *v
	db.visions = append(db.visions, &clone)
	return nil
}

// GetVision retrieves one of the user's visions.
func (db *DB) GetVision(ctx context.Context, userID, id string) (*domain.LifeVision, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, v := range db.visions {
		if v.ID == id && v.UserID == userID {
			clone := *v
			return &clone, nil
		}
	}
	return nil, nil
}

// ListVisions returns the user's visions, newest first.
func (db *DB) ListVisions(ctx context.Context, userID string) ([]domain.LifeVision, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var visions []domain.LifeVision
	for _, v := range db.visions {
		if v.UserID == userID {
			visions = append(visions, *v)
		}
	}
	sort.SliceStable(visions, func(i, j int) bool { return visions[i].CreatedAt.After(visions[j].CreatedAt) })
	return visions, nil
}

// UpdateVision saves a vision's title and content.
func (db *DB) UpdateVision(ctx context.Context, v *domain.LifeVision) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.visions {
		if existing.ID == v.ID && existing.UserID == v.UserID {
			existing.Title = v.Title
			existing.Content = v.Content
			existing.UpdatedAt = v.UpdatedAt
			return nil
		}
	}
	return nil
}

// DeleteVision removes one vision.
func (db *DB) DeleteVision(ctx context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.visions = filter(db.visions, func(v *domain.LifeVision) bool {
		return !(v.ID == id && v.UserID == userID)
	})
	return nil
}

// --- FeedbackRepository ---

// CreateFeedback records a user's reaction to a piece of AI output.
func (db *DB) CreateFeedback(ctx context.Context, f *domain.AIFeedback) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	clone := *f
	db.feedback = append(db.feedback, &clone)
	return nil
}

// --- StatsRepository ---

// CountsByUser returns one overview row per user, oldest account first.
func (db *DB) CountsByUser(ctx context.Context, now time.Time) ([]domain.UserCounts, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	users := make([]*domain.User, len(db.users))
	copy(users, db.users)
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	var counts []domain.UserCounts
	for _, u := range users {
		c := domain.UserCounts{User: *u}
		for _, e := range db.entries {
			if e.UserID == u.ID {
				c.Entries++
			}
		}
		for _, b := range db.beliefs {
			if b.UserID == u.ID {
				c.Beliefs++
			}
		}
		for _, s := range db.stories {
			if s.UserID == u.ID {
				c.Stories++
			}
		}
		for _, s := range db.sessions {
			if s.UserID == u.ID && s.ExpiresAt.After(now) {
				c.ActiveSessions++
			}
		}
		counts = append(counts, c)
	}
	return counts, nil
}

// UserActivity aggregates one user's footprint.
func (db *DB) UserActivity(ctx context.Context, userID string, now time.Time) (*domain.UserActivity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	a := &domain.UserActivity{BeliefsByState: map[string]int{}}
	for _, e := range db.entries {
		if e.UserID != userID {
			continue
		}
		a.Entries++
		if a.LastEntryAt == nil || e.CreatedAt.After(*a.LastEntryAt) {
			t := e.CreatedAt
			a.LastEntryAt = &t
		}
	}
	for _, b := range db.beliefs {
		if b.UserID == userID {
			a.BeliefsByState[b.Status]++
		}
	}
	for _, s := range db.stories {
		if s.UserID == userID {
			a.Stories++
		}
	}
	for _, af := range db.affirmations {
		if af.UserID == userID {
			a.Affirmations++
		}
	}
	for _, r := range db.reflections {
		if r.UserID == userID {
			a.Reflections++
		}
	}
	for _, v := range db.visions {
		if v.UserID == userID {
			a.Visions++
		}
	}
	for _, s := range db.sessions {
		if s.UserID == userID && s.ExpiresAt.After(now) {
			a.ActiveSessions++
		}
	}
	return a, nil
}

func filter[T any](in []*T, keep func(*T) bool) []*T {
	out := in[:0]
	for _, item := range in {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
