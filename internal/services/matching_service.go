package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchingService ranks events for a volunteer. Scoring is pure: it never
// mutates the profile, the events, or any stored state.
type MatchingService struct {
	profileRepo repositories.ProfileRepository
	eventRepo   repositories.EventRepository
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(profileRepo repositories.ProfileRepository, eventRepo repositories.EventRepository) *MatchingService {
	return &MatchingService{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
	}
}

// ScoreEvent computes the match score between one volunteer and one event:
//   - 0 when the event is already full, regardless of other factors
//   - +2 per skill shared between the profile and the event's required skills
//   - +1 when the event location contains the volunteer's city
//     (case-insensitive substring, not equality)
//   - +1 when the event's calendar day appears in the availability list
func ScoreEvent(profile *models.UserProfile, event *models.Event) int {
	if event.IsFull() {
		return 0
	}

	score := 0

	required := make(map[string]bool, len(event.RequiredSkills))
	for _, skill := range event.RequiredSkills {
		required[skill] = true
	}
	counted := make(map[string]bool, len(profile.Skills))
	for _, skill := range profile.Skills {
		if required[skill] && !counted[skill] {
			counted[skill] = true
			score += 2
		}
	}

	if profile.City != "" && event.Location != "" &&
		strings.Contains(strings.ToLower(event.Location), strings.ToLower(profile.City)) {
		score++
	}

	if !event.EventDate.IsZero() {
		day := dayOnly(event.EventDate)
		for _, avail := range profile.Availability {
			if dayOnlyString(avail) == day {
				score++
				break
			}
		}
	}

	return score
}

// RankEvents annotates every event with its score and sorts descending.
// Ties keep the snapshot order, so ranking is deterministic for a fixed
// input.
func RankEvents(profile *models.UserProfile, events []*models.Event) []*models.ScoredEvent {
	scored := make([]*models.ScoredEvent, 0, len(events))
	for _, event := range events {
		scored = append(scored, &models.ScoredEvent{
			Event: event,
			Score: ScoreEvent(profile, event),
		})
	}
	// Stable sort keeps the snapshot order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// MatchesForVolunteer loads the volunteer's profile and the current event
// snapshot and returns the ranked candidate list. Full events remain in the
// list with score 0 so the admin can see them, but they are never matchable.
func (s *MatchingService) MatchesForVolunteer(ctx context.Context, userID primitive.ObjectID) ([]*models.ScoredEvent, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankEvents(profile, events), nil
}

// dayOnly truncates a timestamp to its calendar day
func dayOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// dayOnlyString normalizes an availability entry to its calendar day,
// tolerating full timestamps alongside plain YYYY-MM-DD values
func dayOnlyString(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
