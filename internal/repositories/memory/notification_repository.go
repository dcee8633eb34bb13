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

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository is an in-memory NotificationRepository
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[primitive.ObjectID]models.Notification
}

// NewNotificationRepository creates an empty in-memory notification store
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[primitive.ObjectID]models.Notification)}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	r.notifications[notification.ID] = *notification
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notifications := []*models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID || n.UserID.IsZero() {
			notification := n
			notifications = append(notifications, &notification)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	n.Read = true
	r.notifications[id] = n
	return &n, nil
}
