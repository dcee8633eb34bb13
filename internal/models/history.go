package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryRecord is a durable log entry of completed participation.
// At most one record exists per (userId, eventId) pair, enforced by
// upsert-on-insert rather than a unique index.
type HistoryRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	EventID           primitive.ObjectID `bson:"eventId" json:"eventId"`
	ParticipationDate time.Time          `bson:"participationDate" json:"participationDate"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HistoryView is a history record enriched with its event for display
type HistoryView struct {
	ID                primitive.ObjectID `json:"_id"`
	UserID            primitive.ObjectID `json:"userId"`
	EventID           primitive.ObjectID `json:"eventId"`
	ParticipationDate time.Time          `json:"participationDate"`
	Event             *EventSummary      `json:"event"`
}
