package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "Assigned"
	StatusConfirmed AssignmentStatus = "Confirmed"
	StatusDeclined  AssignmentStatus = "Declined"
	StatusCompleted AssignmentStatus = "Completed"
	StatusCancelled AssignmentStatus = "Cancelled"
)

// ValidStatus reports whether s is one of the assignment lifecycle statuses
func ValidStatus(s AssignmentStatus) bool {
	switch s {
	case StatusAssigned, StatusConfirmed, StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether s holds a capacity slot on the event. Completed
// volunteers consumed their slot, so only a move into Declined/Cancelled
// frees capacity.
func (s AssignmentStatus) Active() bool {
	return s == StatusAssigned || s == StatusConfirmed
}

// Assignment pairs one volunteer with one event. The (userId, eventId)
// pair is unique regardless of status.
type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	EventID      primitive.ObjectID `bson:"eventId" json:"eventId"`
	MatchScore   int                `bson:"matchScore" json:"matchScore"`
	Status       AssignmentStatus   `bson:"status" json:"status"`
	AssignedDate time.Time          `bson:"assignedDate" json:"assignedDate"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AssignmentView is the client-facing assignment row, enriched with the
// event and, for admin listings, the volunteer summary.
type AssignmentView struct {
	ID           primitive.ObjectID `json:"_id"`
	UserID       primitive.ObjectID `json:"userId"`
	EventID      primitive.ObjectID `json:"eventId"`
	Status       AssignmentStatus   `json:"status"`
	MatchScore   int                `json:"matchScore"`
	AssignedDate time.Time          `json:"assignedDate"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Event        *EventSummary      `json:"event"`
	User         *UserSummary       `json:"user,omitempty"`
}

// View builds the serialized row for an assignment
func (a *Assignment) View(event *Event, user *User) *AssignmentView {
	return &AssignmentView{
		ID:           a.ID,
		UserID:       a.UserID,
		EventID:      a.EventID,
		Status:       a.Status,
		MatchScore:   a.MatchScore,
		AssignedDate: a.AssignedDate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		Event:        event.Summary(),
		User:         user.Summary(),
	}
}

// CreateAssignmentRequest is the body for POST /api/assignments
type CreateAssignmentRequest struct {
	UserID     string `json:"userId"`
	EventID    string `json:"eventId"`
	MatchScore int    `json:"matchScore"`
}

// UpdateStatusRequest is the body for PATCH /api/assignments/:id/status
type UpdateStatusRequest struct {
	Status AssignmentStatus `json:"status"`
}
