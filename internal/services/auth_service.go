package services

import (
	"context"
	"errors"

	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/repositories"
	"github.com/volunteerhub/volunteerhub-backend/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *jwt.Manager
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, tokens *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register creates a volunteer account and its empty profile
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleVolunteer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Every account starts with an empty profile the volunteer fills in
	// later; profile absence never blocks login.
	if err := s.profileRepo.Create(ctx, models.NewUserProfile(user.ID, user.Name)); err != nil {
		s.logger.Error("failed to create profile for new user",
			zap.String("userId", user.ID.Hex()),
			zap.Error(err))
	}

	user.Password = ""
	return user, nil
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}
