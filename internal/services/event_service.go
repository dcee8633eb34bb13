package services

import (
	"context"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventService handles event CRUD. The assignedVolunteers counter belongs
// to the assignment ledger; the only other writer is the explicit admin
// override on update.
type EventService struct {
	eventRepo repositories.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
	}
}

// GetAll retrieves all events sorted by date
func (s *EventService) GetAll(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// GetByID retrieves one event
func (s *EventService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// Create adds a new event
func (s *EventService) Create(ctx context.Context, req *models.EventRequest) (*models.Event, error) {
	needed := req.NeededVolunteers
	if needed < 1 {
		needed = 1
	}
	event := &models.Event{
		EventName:        req.EventName,
		Description:      req.Description,
		Location:         req.Location,
		RequiredSkills:   req.RequiredSkills,
		Urgency:          req.Urgency,
		EventDate:        req.EventDate,
		NeededVolunteers: needed,
	}
	if event.RequiredSkills == nil {
		event.RequiredSkills = []string{}
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update edits an existing event
func (s *EventService) Update(ctx context.Context, id primitive.ObjectID, req *models.EventRequest) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.EventName = req.EventName
	event.Description = req.Description
	event.Location = req.Location
	if req.RequiredSkills != nil {
		event.RequiredSkills = req.RequiredSkills
	}
	event.Urgency = req.Urgency
	event.EventDate = req.EventDate
	if req.NeededVolunteers >= 1 {
		event.NeededVolunteers = req.NeededVolunteers
	}
	if req.AssignedVolunteers != nil {
		event.AssignedVolunteers = *req.AssignedVolunteers
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.eventRepo.Delete(ctx, id)
}
