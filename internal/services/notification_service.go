package services

import (
	"context"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// Create stores a notification; an empty userID means broadcast
func (s *NotificationService) Create(ctx context.Context, notificationType, message string, userID primitive.ObjectID) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser returns a user's notifications plus broadcasts, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Notification, error) {
	return s.notificationRepo.FindByUserID(ctx, userID)
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(ctx, id)
}
