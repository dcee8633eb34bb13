package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AssignmentService is the ledger for volunteer-event pairings: it admits
// new assignments under the capacity and uniqueness constraints and manages
// status transitions over the pairing's lifetime.
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	eventRepo      repositories.EventRepository
	userRepo       repositories.UserRepository
	history        *HistoryService
	logger         *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	history *HistoryService,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		history:        history,
		logger:         logger,
	}
}

// Assign pairs a volunteer with an event. The assignment is inserted before
// the counter moves so the unique pair index catches duplicate racers; the
// counter increment is a conditional update, and losing that race rolls the
// insert back and reports the event as full. An event whose date already
// passed yields a Completed assignment and an immediate history record.
func (s *AssignmentService) Assign(ctx context.Context, userID, eventID primitive.ObjectID, matchScore int) (*models.AssignmentView, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsFull() {
		return nil, apperrors.ErrCapacityExceeded
	}

	now := time.Now()
	isPast := !event.EventDate.IsZero() && event.EventDate.Before(now)
	status := models.StatusAssigned
	if isPast {
		status = models.StatusCompleted
	}

	assignment := &models.Assignment{
		UserID:     userID,
		EventID:    eventID,
		MatchScore: matchScore,
		Status:     status,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	if err := s.eventRepo.IncrementAssigned(ctx, eventID); err != nil {
		if delErr := s.assignmentRepo.Delete(ctx, assignment.ID); delErr != nil {
			s.logger.Error("failed to roll back assignment after capacity race",
				zap.String("assignmentId", assignment.ID.Hex()),
				zap.Error(delErr))
		}
		return nil, err
	}
	event.AssignedVolunteers++

	if isPast {
		if err := s.history.RecordParticipation(ctx, userID, eventID, event.EventDate); err != nil {
			return nil, fmt.Errorf("record participation: %w", err)
		}
	}

	return assignment.View(event, nil), nil
}

// UpdateStatus moves an assignment to a new status. Transitions are
// permissive: any status may move to any other. Side effects:
//   - leaving the active set {Assigned, Confirmed} for Declined/Cancelled
//     frees the volunteer's slot on the event
//   - re-entering the active set from Declined/Cancelled reclaims a slot
//     through the capacity guard and fails when the event has since filled
//   - arriving at Completed writes the history record (idempotent);
//     Completed never moves the counter, since the slot was consumed
func (s *AssignmentService) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus models.AssignmentStatus) (*models.AssignmentView, error) {
	if !models.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError(map[string]string{
			"status": "status must be one of Assigned, Confirmed, Declined, Completed, Cancelled",
		})
	}

	current, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inactive := func(st models.AssignmentStatus) bool {
		return st == models.StatusDeclined || st == models.StatusCancelled
	}

	// Reclaiming a slot must pass the capacity guard before the status
	// flips, so a full event blocks the transition.
	if inactive(current.Status) && newStatus.Active() {
		if err := s.eventRepo.IncrementAssigned(ctx, current.EventID); err != nil {
			return nil, err
		}
	}

	updated, err := s.assignmentRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	if current.Status.Active() && inactive(newStatus) {
		if err := s.eventRepo.DecrementAssigned(ctx, current.EventID); err != nil {
			s.logger.Error("failed to release event capacity",
				zap.String("eventId", current.EventID.Hex()),
				zap.Error(err))
		}
	}

	if newStatus == models.StatusCompleted {
		if err := s.history.RecordParticipation(ctx, updated.UserID, updated.EventID, time.Now()); err != nil {
			return nil, fmt.Errorf("record participation: %w", err)
		}
	}

	event, err := s.eventRepo.FindByID(ctx, updated.EventID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return updated.View(event, nil), nil
}

// ListForVolunteer returns a volunteer's assignments filtered by tab.
// "upcoming" holds active assignments for events still ahead; "past" holds
// events already over or assignments completed early. Assignments whose
// event is missing or undated land in neither tab. Rows come back in
// ascending event-date order.
func (s *AssignmentService) ListForVolunteer(ctx context.Context, userID primitive.ObjectID, tab string) ([]*models.AssignmentView, error) {
	assignments, err := s.assignmentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.FindByIDs(ctx, eventIDsOf(assignments))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := []*models.AssignmentView{}
	for _, a := range assignments {
		event, ok := events[a.EventID]
		if !ok {
			continue
		}
		switch tab {
		case "upcoming":
			if Classify(event.EventDate, a.Status, now) != TimeframeUpcoming || !a.Status.Active() {
				continue
			}
		case "past":
			if Classify(event.EventDate, a.Status, now) != TimeframePast {
				continue
			}
		}
		views = append(views, a.View(event, nil))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Event.EventDate.Before(views[j].Event.EventDate)
	})
	return views, nil
}

// ListAll returns every assignment for the admin view, optionally filtered
// by status, newest first, with event and volunteer summaries attached.
func (s *AssignmentService) ListAll(ctx context.Context, status models.AssignmentStatus) ([]*models.AssignmentView, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, apperrors.NewValidationError(map[string]string{
			"status": "unknown assignment status",
		})
	}

	assignments, err := s.assignmentRepo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.FindByIDs(ctx, eventIDsOf(assignments))
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*models.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, a.View(events[a.EventID], users[a.UserID]))
	}
	return views, nil
}

// GetByID fetches one assignment enriched with its event
func (s *AssignmentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AssignmentView, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, assignment.EventID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return assignment.View(event, nil), nil
}

func eventIDsOf(assignments []*models.Assignment) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.EventID)
	}
	return ids
}
