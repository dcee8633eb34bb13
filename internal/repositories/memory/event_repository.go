package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.EventRepository = (*EventRepository)(nil)

// EventRepository is an in-memory EventRepository
type EventRepository struct {
	mu     sync.RWMutex
	events map[primitive.ObjectID]models.Event
}

// NewEventRepository creates an empty in-memory event store
func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[primitive.ObjectID]models.Event)}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[primitive.ObjectID]*models.Event, len(ids))
	for _, id := range ids {
		if e, ok := r.events[id]; ok {
			event := e
			result[id] = &event
		}
	}
	return result, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]*models.Event, 0, len(r.events))
	for _, e := range r.events {
		event := e
		events = append(events, &event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.ErrNotFound
	}
	event.UpdatedAt = time.Now()
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

// IncrementAssigned applies the check and the increment under one lock,
// matching the conditional update the MongoDB implementation performs.
func (r *EventRepository) IncrementAssigned(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if e.AssignedVolunteers >= e.NeededVolunteers {
		return apperrors.ErrCapacityExceeded
	}
	e.AssignedVolunteers++
	e.UpdatedAt = time.Now()
	r.events[id] = e
	return nil
}

func (r *EventRepository) DecrementAssigned(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if e.AssignedVolunteers > 0 {
		e.AssignedVolunteers--
		e.UpdatedAt = time.Now()
		r.events[id] = e
	}
	return nil
}
