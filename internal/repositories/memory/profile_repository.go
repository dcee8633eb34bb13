package memory

import (
	"context"
	"sync"
	"time"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// ProfileRepository is an in-memory ProfileRepository keyed by owner
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]models.UserProfile // keyed by userId
}

// NewProfileRepository creates an empty in-memory profile store
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[primitive.ObjectID]models.UserProfile)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]*models.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profile := p
		profiles = append(profiles, &profile)
	}
	return profiles, nil
}
