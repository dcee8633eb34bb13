package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile holds the volunteer-facing details for a user account.
// At most one profile exists per user (unique index on userId).
type UserProfile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	Zipcode     string             `bson:"zipcode" json:"zipcode"`
	Skills      []string           `bson:"skills" json:"skills"`
	Preferences []string           `bson:"preferences" json:"preferences"`
	// Availability holds calendar days in YYYY-MM-DD form, no time component.
	Availability []string  `bson:"availability" json:"availability"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewUserProfile creates an empty profile for a freshly registered user
func NewUserProfile(userID primitive.ObjectID, fullName string) *UserProfile {
	return &UserProfile{
		UserID:       userID,
		FullName:     fullName,
		Skills:       []string{},
		Preferences:  []string{},
		Availability: []string{},
	}
}

// ProfileUpdateRequest is the body accepted by profile create/update
type ProfileUpdateRequest struct {
	FullName     string   `json:"fullName" validate:"required,min=3"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	State        string   `json:"state" validate:"required"`
	Zipcode      string   `json:"zipcode" validate:"required,zipcode"`
	Skills       []string `json:"skills" validate:"required,min=1"`
	Preferences  []string `json:"preferences"`
	Availability []string `json:"availability" validate:"dive,datetime=2006-01-02"`
}
