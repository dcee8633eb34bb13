package repositories

import (
	"context"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
}

// ProfileRepository defines the interface for volunteer profile operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
	FindAll(ctx context.Context) ([]*models.UserProfile, error)
}

// EventRepository defines the interface for event data operations.
// IncrementAssigned and DecrementAssigned are conditional updates: the
// increment only applies while assignedVolunteers < neededVolunteers and
// fails with apperrors.ErrCapacityExceeded otherwise; the decrement floors
// at zero.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Event, error)
	FindAll(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementAssigned(ctx context.Context, id primitive.ObjectID) error
	DecrementAssigned(ctx context.Context, id primitive.ObjectID) error
}

// AssignmentRepository defines the interface for assignment ledger storage.
// Create must enforce uniqueness on the (userId, eventId) pair at the
// storage layer and surface violations as apperrors.ErrDuplicateAssignment.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Assignment, error)
	FindAll(ctx context.Context, status models.AssignmentStatus) ([]*models.Assignment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus) (*models.Assignment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// HistoryRepository defines the interface for the participation log.
// Upsert inserts at most one record per (userId, eventId) pair; an existing
// record is left untouched.
type HistoryRepository interface {
	Upsert(ctx context.Context, record *models.HistoryRecord) error
	FindByPair(ctx context.Context, userID, eventID primitive.ObjectID) (*models.HistoryRecord, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.HistoryRecord, error)
}

// NotificationRepository defines the interface for in-app notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
}
