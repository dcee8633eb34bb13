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

var _ repositories.AssignmentRepository = (*AssignmentRepository)(nil)

type pairKey struct {
	userID  primitive.ObjectID
	eventID primitive.ObjectID
}

// AssignmentRepository is an in-memory AssignmentRepository enforcing the
// unique (userId, eventId) pair the way the MongoDB unique index does.
type AssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[primitive.ObjectID]models.Assignment
	pairs       map[pairKey]primitive.ObjectID
}

// NewAssignmentRepository creates an empty in-memory assignment store
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{
		assignments: make(map[primitive.ObjectID]models.Assignment),
		pairs:       make(map[pairKey]primitive.ObjectID),
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{assignment.UserID, assignment.EventID}
	if _, exists := r.pairs[key]; exists {
		return apperrors.ErrDuplicateAssignment
	}
	assignment.ID = primitive.NewObjectID()
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = time.Now()
	}
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = time.Now()
	r.assignments[assignment.ID] = *assignment
	r.pairs[key] = assignment.ID
	return nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *AssignmentRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var assignments []*models.Assignment
	for _, a := range r.assignments {
		if a.UserID == userID {
			assignment := a
			assignments = append(assignments, &assignment)
		}
	}
	sortByAssignedDateDesc(assignments)
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return assignments, nil
}

func (r *AssignmentRepository) FindAll(ctx context.Context, status models.AssignmentStatus) ([]*models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var assignments []*models.Assignment
	for _, a := range r.assignments {
		if status != "" && a.Status != status {
			continue
		}
		assignment := a
		assignments = append(assignments, &assignment)
	}
	sortByAssignedDateDesc(assignments)
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return assignments, nil
}

func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.assignments[id] = a
	return &a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil
	}
	delete(r.pairs, pairKey{a.UserID, a.EventID})
	delete(r.assignments, id)
	return nil
}

func sortByAssignedDateDesc(assignments []*models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].AssignedDate.After(assignments[j].AssignedDate)
	})
}
