package services

import (
	"context"

	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService handles volunteer profile management
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetByUserID retrieves the profile owned by a user
func (s *ProfileService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

// GetAll retrieves every profile (admin matching view)
func (s *ProfileService) GetAll(ctx context.Context) ([]*models.UserProfile, error) {
	return s.profileRepo.FindAll(ctx)
}

// Upsert applies a validated update to the user's profile, creating it if
// registration somehow didn't
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, req *models.ProfileUpdateRequest) (*models.UserProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		profile = models.NewUserProfile(userID, req.FullName)
		applyProfileUpdate(profile, req)
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	applyProfileUpdate(profile, req)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a user's profile (admin action)
func (s *ProfileService) Delete(ctx context.Context, userID primitive.ObjectID) error {
	return s.profileRepo.Delete(ctx, userID)
}

func applyProfileUpdate(profile *models.UserProfile, req *models.ProfileUpdateRequest) {
	profile.FullName = req.FullName
	profile.Address = req.Address
	profile.City = req.City
	profile.State = req.State
	profile.Zipcode = req.Zipcode
	profile.Skills = req.Skills
	if req.Preferences != nil {
		profile.Preferences = req.Preferences
	}
	if req.Availability != nil {
		profile.Availability = req.Availability
	}
}
