package app

import (
	"context"
	"fmt"
	"strings"

	"innerlight/internal/domain"
)

// journalExcerptLimit caps how many recent journal entries feed the profile.
const journalExcerptLimit = 10

// ProfileBelief is one belief with its origin inquiry, as seen by the AI.
type ProfileBelief struct {
	Statement        string
	Status           string
	FunctionalBelief *string
	Origins          []OriginAnswer
}

// OriginAnswer is one answered origin question.
type OriginAnswer struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// Profile is the flattened view of everything the system knows about a user,
// rendered into the context block of every AI prompt.
type Profile struct {
	Name            *string
	Gender          *string
	DateOfBirth     *string
	PlaceOfBirth    *string
	Beliefs         []ProfileBelief
	JournalExcerpts []string
	StoryTitles     []string
	Affirmations    []string
}

// GenderIs reports whether the profile's gender equals g.
func (p *Profile) GenderIs(g string) bool {
	return p.Gender != nil && *p.Gender == g
}

// ProfileService assembles a user's stored data into an AI prompt context.
type ProfileService struct {
	users        domain.UserRepository
	beliefs      domain.BeliefRepository
	origins      domain.OriginRepository
	journal      domain.JournalRepository
	stories      domain.StoryRepository
	affirmations domain.AffirmationRepository
}

// NewProfileService creates a ProfileService backed by the given repositories.
func NewProfileService(
	users domain.UserRepository,
	beliefs domain.BeliefRepository,
	origins domain.OriginRepository,
	journal domain.JournalRepository,
	stories domain.StoryRepository,
	affirmations domain.AffirmationRepository,
) *ProfileService {
	return &ProfileService{
		users:        users,
		beliefs:      beliefs,
		origins:      origins,
		journal:      journal,
		stories:      stories,
		affirmations: affirmations,
	}
}

// BuildProfile gathers the user's beliefs (with origins), newest journal
// excerpts, story titles, and affirmations. Every read is filtered by the
// owning user.
func (s *ProfileService) BuildProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	beliefs, err := s.beliefs.ListBeliefs(ctx, userID)
	if err != nil {
		return nil, err
	}
	allOrigins, err := s.origins.ListUserOrigins(ctx, userID)
	if err != nil {
		return nil, err
	}
	excerpts, err := s.journal.ListRecentExcerpts(ctx, userID, journalExcerptLimit)
	if err != nil {
		return nil, err
	}
	titles, err := s.stories.ListStoryTitles(ctx, userID)
	if err != nil {
		return nil, err
	}
	affirmations, err := s.affirmations.ListUserAffirmations(ctx, userID)
	if err != nil {
		return nil, err
	}

	originsByBelief := make(map[string][]OriginAnswer)
	for _, o := range allOrigins {
		originsByBelief[o.BeliefID] = append(originsByBelief[o.BeliefID], OriginAnswer{
			Question: o.Question,
			Response: o.Response,
		})
	}

	profile := &Profile{
		Name:            user.Name,
		Gender:          user.Gender,
		DateOfBirth:     user.DateOfBirth,
		PlaceOfBirth:    user.PlaceOfBirth,
		JournalExcerpts: excerpts,
		StoryTitles:     titles,
	}
	for _, b := range beliefs {
		profile.Beliefs = append(profile.Beliefs, ProfileBelief{
			Statement:        b.Statement,
			Status:           b.Status,
			FunctionalBelief: b.FunctionalBelief,
			Origins:          originsByBelief[b.ID],
		})
	}
	for _, a := range affirmations {
		profile.Affirmations = append(profile.Affirmations, a.Content)
	}
	return profile, nil
}

// Context renders the profile into the ordered text document used verbatim
// as AI prompt context.
func (p *Profile) Context() string {
	var lines []string

	if p.Name != nil {
		lines = append(lines, fmt.Sprintf("Name: %s", *p.Name))
	}
	if p.Gender != nil {
		lines = append(lines, fmt.Sprintf("Gender: %s", *p.Gender))
	}
	if p.DateOfBirth != nil {
		lines = append(lines, fmt.Sprintf("Date of birth: %s", *p.DateOfBirth))
	}
	if p.PlaceOfBirth != nil {
		lines = append(lines, fmt.Sprintf("Place of birth: %s", *p.PlaceOfBirth))
	}

	if len(p.Beliefs) > 0 {
		lines = append(lines, "\n── ALL IDENTIFIED NEGATIVE BELIEFS ──")
		for _, b := range p.Beliefs {
			lines = append(lines, fmt.Sprintf("• %q [%s]", b.Statement, b.Status))
			if b.FunctionalBelief != nil {
				lines = append(lines, fmt.Sprintf("  → Moving toward: %q", *b.FunctionalBelief))
			}
			if len(b.Origins) > 0 {
				lines = append(lines, "  Origins:")
				for _, o := range b.Origins {
					lines = append(lines, "    Q: "+o.Question)
					lines = append(lines, "    A: "+o.Response)
				}
			}
		}
	}

	if len(p.JournalExcerpts) > 0 {
		lines = append(lines, "\n── JOURNAL ENTRIES (emotional landscape) ──")
		for _, excerpt := range p.JournalExcerpts {
			lines = append(lines, fmt.Sprintf("%q", excerpt))
			lines = append(lines, "---")
		}
	}

	if len(p.Affirmations) > 0 {
		lines = append(lines, "\n── EXISTING AFFIRMATIONS ──")
		for _, a := range p.Affirmations {
			lines = append(lines, "• "+a)
		}
	}

	if len(p.StoryTitles) > 0 {
		lines = append(lines, "\n── PREVIOUS STORIES (avoid repeating themes) ──")
		for _, t := range p.StoryTitles {
			lines = append(lines, "• "+t)
		}
	}

	return strings.Join(lines, "\n")
}
