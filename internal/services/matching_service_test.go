package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories/memory"
)

func houstonVolunteer() *models.UserProfile {
	return &models.UserProfile{
		FullName:     "Demo Volunteer",
		City:         "Houston",
		Skills:       []string{"Teamwork", "Logistics"},
		Availability: []string{"2025-11-20"},
	}
}

func warehouseEvent() *models.Event {
	return &models.Event{
		EventName:          "Food Drive - Warehouse",
		Location:           "123 Community Way, Houston, TX",
		RequiredSkills:     []string{"Logistics", "Driving"},
		EventDate:          time.Date(2025, 11, 20, 18, 30, 0, 0, time.UTC),
		AssignedVolunteers: 1,
		NeededVolunteers:   3,
	}
}

func TestScoreEvent(t *testing.T) {
	// One shared skill (+2), location contains the city (+1), event day in
	// the availability list (+1).
	score := ScoreEvent(houstonVolunteer(), warehouseEvent())
	assert.Equal(t, 4, score)
}

func TestScoreEvent_FullEventScoresZero(t *testing.T) {
	event := warehouseEvent()
	event.AssignedVolunteers = 3

	assert.Equal(t, 0, ScoreEvent(houstonVolunteer(), event))
}

func TestScoreEvent_SharedSkillsCountedOnce(t *testing.T) {
	profile := houstonVolunteer()
	profile.City = ""
	profile.Availability = nil
	profile.Skills = []string{"Logistics", "Logistics", "Logistics"}

	event := warehouseEvent()

	assert.Equal(t, 2, ScoreEvent(profile, event))
}

func TestScoreEvent_LocationMatchIsCaseInsensitiveSubstring(t *testing.T) {
	profile := houstonVolunteer()
	profile.Skills = nil
	profile.Availability = nil
	profile.City = "hOuStOn"

	assert.Equal(t, 1, ScoreEvent(profile, warehouseEvent()))
}

func TestScoreEvent_AvailabilityComparedByDay(t *testing.T) {
	profile := houstonVolunteer()
	profile.Skills = nil
	profile.City = ""
	// Full timestamps in the availability list still match on the day.
	profile.Availability = []string{"2025-11-20T08:00:00Z"}

	assert.Equal(t, 1, ScoreEvent(profile, warehouseEvent()))
}

func TestScoreEvent_NoSkillOverlap(t *testing.T) {
	profile := houstonVolunteer()
	profile.Skills = []string{"Cooking"}
	profile.City = "Dallas"
	profile.Availability = []string{"2025-01-01"}

	assert.Equal(t, 0, ScoreEvent(profile, warehouseEvent()))
}

func TestRankEvents_SortsDescendingAndKeepsTieOrder(t *testing.T) {
	profile := houstonVolunteer()

	strong := warehouseEvent()
	tieA := &models.Event{
		EventName:        "Tie A",
		Location:         "Houston, TX",
		NeededVolunteers: 2,
	}
	tieB := &models.Event{
		EventName:        "Tie B",
		Location:         "Downtown Houston",
		NeededVolunteers: 2,
	}
	full := warehouseEvent()
	full.EventName = "Full Event"
	full.AssignedVolunteers = 3

	ranked := RankEvents(profile, []*models.Event{tieA, full, strong, tieB})

	require.Len(t, ranked, 4)
	assert.Equal(t, strong.EventName, ranked[0].Event.EventName)
	assert.Equal(t, 4, ranked[0].Score)
	// Both score 1; input order decides.
	assert.Equal(t, "Tie A", ranked[1].Event.EventName)
	assert.Equal(t, "Tie B", ranked[2].Event.EventName)
	// Full events stay visible at the bottom with score 0.
	assert.Equal(t, "Full Event", ranked[3].Event.EventName)
	assert.Equal(t, 0, ranked[3].Score)
}

func TestRankEvents_Deterministic(t *testing.T) {
	profile := houstonVolunteer()
	events := []*models.Event{warehouseEvent(), {EventName: "Other", NeededVolunteers: 1}}

	first := RankEvents(profile, events)
	second := RankEvents(profile, events)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Event.EventName, second[i].Event.EventName)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRankEvents_EmptyInput(t *testing.T) {
	assert.Empty(t, RankEvents(houstonVolunteer(), nil))
}

func TestMatchesForVolunteer(t *testing.T) {
	ctx := context.Background()
	profileRepo := memory.NewProfileRepository()
	eventRepo := memory.NewEventRepository()

	profile := houstonVolunteer()
	profile.UserID = newObjectID(t)
	require.NoError(t, profileRepo.Create(ctx, profile))
	require.NoError(t, eventRepo.Create(ctx, warehouseEvent()))

	svc := NewMatchingService(profileRepo, eventRepo)

	matches, err := svc.MatchesForVolunteer(ctx, profile.UserID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 4, matches[0].Score)
}

func TestMatchesForVolunteer_MissingProfile(t *testing.T) {
	svc := NewMatchingService(memory.NewProfileRepository(), memory.NewEventRepository())

	_, err := svc.MatchesForVolunteer(context.Background(), newObjectID(t))
	assert.Error(t, err)
}
