package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventUrgency string

const (
	UrgencyLow    EventUrgency = "Low"
	UrgencyMedium EventUrgency = "Medium"
	UrgencyHigh   EventUrgency = "High"
)

// Event represents a volunteer event. AssignedVolunteers is a derived
// counter maintained exclusively by the assignment ledger.
type Event struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EventName          string             `bson:"eventName" json:"eventName"`
	Description        string             `bson:"description" json:"description"`
	Location           string             `bson:"location" json:"location"`
	RequiredSkills     []string           `bson:"requiredSkills" json:"requiredSkills"`
	Urgency            EventUrgency       `bson:"urgency" json:"urgency"`
	EventDate          time.Time          `bson:"eventDate" json:"eventDate"`
	NeededVolunteers   int                `bson:"neededVolunteers" json:"neededVolunteers"`
	AssignedVolunteers int                `bson:"assignedVolunteers" json:"assignedVolunteers"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsFull reports whether the event has no remaining capacity
func (e *Event) IsFull() bool {
	return e.AssignedVolunteers >= e.NeededVolunteers
}

// EventSummary is the sanitized event shape nested inside assignment views
type EventSummary struct {
	ID                 primitive.ObjectID `bson:"_id" json:"_id"`
	EventName          string             `bson:"eventName" json:"eventName"`
	Description        string             `bson:"description" json:"description"`
	Location           string             `bson:"location" json:"location"`
	RequiredSkills     []string           `bson:"requiredSkills" json:"requiredSkills"`
	Urgency            EventUrgency       `bson:"urgency" json:"urgency"`
	EventDate          time.Time          `bson:"eventDate" json:"eventDate"`
	NeededVolunteers   int                `bson:"neededVolunteers" json:"neededVolunteers"`
	AssignedVolunteers int                `bson:"assignedVolunteers" json:"assignedVolunteers"`
}

// Summary strips timestamps from an event for embedding in responses
func (e *Event) Summary() *EventSummary {
	if e == nil {
		return nil
	}
	return &EventSummary{
		ID:                 e.ID,
		EventName:          e.EventName,
		Description:        e.Description,
		Location:           e.Location,
		RequiredSkills:     e.RequiredSkills,
		Urgency:            e.Urgency,
		EventDate:          e.EventDate,
		NeededVolunteers:   e.NeededVolunteers,
		AssignedVolunteers: e.AssignedVolunteers,
	}
}

// EventRequest is the body accepted by event create/update
type EventRequest struct {
	EventName          string       `json:"eventName" validate:"required"`
	Description        string       `json:"description" validate:"required"`
	Location           string       `json:"location" validate:"required"`
	RequiredSkills     []string     `json:"requiredSkills"`
	Urgency            EventUrgency `json:"urgency" validate:"required,oneof=Low Medium High"`
	EventDate          time.Time    `json:"eventDate" validate:"required"`
	NeededVolunteers   int          `json:"neededVolunteers" validate:"omitempty,min=1"`
	AssignedVolunteers *int         `json:"assignedVolunteers"` // manual override on edit only
}

// ScoredEvent is an event annotated with a match score for one volunteer
type ScoredEvent struct {
	Event *Event `json:"event"`
	Score int    `json:"score"`
}
