package services

import (
	"context"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeframe classifies an assignment for the upcoming/past tabs
type Timeframe string

const (
	TimeframeUpcoming Timeframe = "upcoming"
	TimeframePast     Timeframe = "past"
	// TimeframeUnknown covers assignments whose event date is missing;
	// these appear under neither tab.
	TimeframeUnknown Timeframe = "unknown"
)

// Classify places an assignment+event pair on the timeline. A Completed
// status forces "past" even when the event date is still ahead.
func Classify(eventDate time.Time, status models.AssignmentStatus, now time.Time) Timeframe {
	if eventDate.IsZero() {
		return TimeframeUnknown
	}
	if eventDate.Before(now) || status == models.StatusCompleted {
		return TimeframePast
	}
	return TimeframeUpcoming
}

// HistoryService guarantees a durable record of completed participation and
// serves the volunteer's history view.
type HistoryService struct {
	historyRepo repositories.HistoryRepository
	eventRepo   repositories.EventRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo repositories.HistoryRepository, eventRepo repositories.EventRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		eventRepo:   eventRepo,
	}
}

// RecordParticipation writes the history record for a (volunteer, event)
// pair. A second call for the same pair is a no-op; a zero date falls back
// to the current time.
func (s *HistoryService) RecordParticipation(ctx context.Context, userID, eventID primitive.ObjectID, date time.Time) error {
	if date.IsZero() {
		date = time.Now()
	}
	return s.historyRepo.Upsert(ctx, &models.HistoryRecord{
		UserID:            userID,
		EventID:           eventID,
		ParticipationDate: date,
	})
}

// ForVolunteer returns the durable participation log enriched with events
func (s *HistoryService) ForVolunteer(ctx context.Context, userID primitive.ObjectID) ([]*models.HistoryView, error) {
	records, err := s.historyRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]primitive.ObjectID, 0, len(records))
	for _, rec := range records {
		eventIDs = append(eventIDs, rec.EventID)
	}
	events, err := s.eventRepo.FindByIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*models.HistoryView, 0, len(records))
	for _, rec := range records {
		views = append(views, &models.HistoryView{
			ID:                rec.ID,
			UserID:            rec.UserID,
			EventID:           rec.EventID,
			ParticipationDate: rec.ParticipationDate,
			Event:             events[rec.EventID].Summary(),
		})
	}
	return views, nil
}
