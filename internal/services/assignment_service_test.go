package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories/memory"
)

func newObjectID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

type assignmentFixture struct {
	assignments *memory.AssignmentRepository
	events      *memory.EventRepository
	users       *memory.UserRepository
	history     *memory.HistoryRepository
	svc         *AssignmentService
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	assignments := memory.NewAssignmentRepository()
	events := memory.NewEventRepository()
	users := memory.NewUserRepository()
	history := memory.NewHistoryRepository()
	historySvc := NewHistoryService(history, events)
	return &assignmentFixture{
		assignments: assignments,
		events:      events,
		users:       users,
		history:     history,
		svc:         NewAssignmentService(assignments, events, users, historySvc, zap.NewNop()),
	}
}

func (f *assignmentFixture) createEvent(t *testing.T, date time.Time, needed, assigned int) *models.Event {
	t.Helper()
	event := &models.Event{
		EventName:          "Food Drive - Warehouse",
		Location:           "Houston, TX",
		EventDate:          date,
		NeededVolunteers:   needed,
		AssignedVolunteers: assigned,
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func TestAssign(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 3, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAssigned, view.Status)
	assert.Equal(t, 4, view.MatchScore)
	require.NotNil(t, view.Event)
	assert.Equal(t, 1, view.Event.AssignedVolunteers)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AssignedVolunteers)
}

func TestAssign_EventNotFound(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.Assign(context.Background(), newObjectID(t), newObjectID(t), 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssign_FullEventRejectedWithoutCounterChange(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 2, 2)

	_, err := f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AssignedVolunteers)
}

func TestAssign_CapacityNeverExceeded(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 2, 0)

	_, err := f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AssignedVolunteers)
}

func TestAssign_DuplicatePairRejectedWithoutCounterChange(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 3, 0)
	userID := newObjectID(t)

	_, err := f.svc.Assign(ctx, userID, event.ID, 4)
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, userID, event.ID, 4)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAssignment)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AssignedVolunteers)
}

func TestAssign_PastEventAutoCompletes(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	eventDate := time.Now().Add(-24 * time.Hour)
	event := f.createEvent(t, eventDate, 3, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, view.Status)

	record, err := f.history.FindByPair(ctx, userID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, eventDate.Format("2006-01-02"), record.ParticipationDate.Format("2006-01-02"))

	// Marking it Completed again leaves that single record untouched.
	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusCompleted)
	require.NoError(t, err)

	records, err := f.history.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}

func TestUpdateStatus_CompletedWritesHistoryOnce(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 3, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 0)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusCompleted)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusCompleted)
	require.NoError(t, err)

	records, err := f.history.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestUpdateStatus_DeclineFreesSlot(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 1, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 0)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusDeclined)
	require.NoError(t, err)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AssignedVolunteers)

	// The freed slot can go to someone else.
	_, err = f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	require.NoError(t, err)
}

func TestUpdateStatus_ReactivationReclaimsSlot(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 1, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusDeclined)
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, view.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AssignedVolunteers)
}

func TestUpdateStatus_ReactivationBlockedWhenEventFilled(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 1, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusDeclined)
	require.NoError(t, err)

	// Someone else takes the slot in the meantime.
	_, err = f.svc.Assign(ctx, newObjectID(t), event.ID, 0)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	// The declined assignment keeps its status.
	current, err := f.assignments.FindByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, current.Status)
}

func TestUpdateStatus_CompletedKeepsSlotConsumed(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 2, 0)
	userID := newObjectID(t)

	view, err := f.svc.Assign(ctx, userID, event.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, view.ID, models.StatusCompleted)
	require.NoError(t, err)

	stored, err := f.events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AssignedVolunteers)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), newObjectID(t), models.AssignmentStatus("Ghosted"))
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), newObjectID(t), models.StatusConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListForVolunteer_Tabs(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	userID := newObjectID(t)

	tomorrow := f.createEvent(t, time.Now().Add(24*time.Hour), 3, 0)
	lastWeek := f.createEvent(t, time.Now().Add(-7*24*time.Hour), 3, 0)
	completedEarly := f.createEvent(t, time.Now().Add(24*time.Hour), 3, 0)

	upcoming, err := f.svc.Assign(ctx, userID, tomorrow.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, upcoming.ID, models.StatusConfirmed)
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, userID, lastWeek.ID, 0)
	require.NoError(t, err)

	early, err := f.svc.Assign(ctx, userID, completedEarly.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, early.ID, models.StatusCompleted)
	require.NoError(t, err)

	upcomingViews, err := f.svc.ListForVolunteer(ctx, userID, "upcoming")
	require.NoError(t, err)
	require.Len(t, upcomingViews, 1)
	assert.Equal(t, tomorrow.ID, upcomingViews[0].EventID)

	pastViews, err := f.svc.ListForVolunteer(ctx, userID, "past")
	require.NoError(t, err)
	require.Len(t, pastViews, 2)
	// Ascending event-date order.
	assert.Equal(t, lastWeek.ID, pastViews[0].EventID)
	assert.Equal(t, completedEarly.ID, pastViews[1].EventID)
}

func TestListAll_FiltersByStatusAndEmbedsUser(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	user := &models.User{Name: "Demo Volunteer", Email: "volunteer@example.com", Role: models.RoleVolunteer}
	require.NoError(t, f.users.Create(ctx, user))

	event := f.createEvent(t, time.Now().Add(48*time.Hour), 3, 0)
	_, err := f.svc.Assign(ctx, user.ID, event.ID, 2)
	require.NoError(t, err)

	all, err := f.svc.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].User)
	assert.Equal(t, user.Email, all[0].User.Email)

	assigned, err := f.svc.ListAll(ctx, models.StatusAssigned)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	completed, err := f.svc.ListAll(ctx, models.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)

	_, err = f.svc.ListAll(ctx, models.AssignmentStatus("bogus"))
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
}

func TestGetByID_RoundTrip(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, time.Now().Add(48*time.Hour), 3, 0)
	userID := newObjectID(t)

	created, err := f.svc.Assign(ctx, userID, event.ID, 7)
	require.NoError(t, err)

	all, err := f.svc.ListAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)

	fetched, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Status, fetched.Status)
	assert.Equal(t, all[0].MatchScore, fetched.MatchScore)
	assert.True(t, all[0].AssignedDate.Equal(fetched.AssignedDate))
	assert.Equal(t, created.Status, fetched.Status)
	assert.Equal(t, 7, fetched.MatchScore)
}
