package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app message shown to a user. UserID is empty for
// broadcast notifications.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Type      string             `bson:"type" json:"type"` // ASSIGNMENT, EVENT_UPDATE, REMINDER
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateNotificationRequest is the body for POST /api/notifications
type CreateNotificationRequest struct {
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId"`
}
