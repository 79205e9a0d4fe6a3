package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/internal/cache"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCGPA  = errors.New("cgpa must be between 0 and 4")
)

// ProfileService reads and updates the caller's own profile
type ProfileService struct {
	userRepo    repository.UserDataSource
	searchCache *cache.SearchCache
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserDataSource, searchCache *cache.SearchCache) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		searchCache: searchCache,
	}
}

// GetProfile returns the caller's account
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// UpdateProfile overwrites the caller's mentor profile fields. All three
// fields are replaced as a unit; omitting cgpa clears it. Search results are
// invalidated so the change is visible on the next search.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.CGPA != nil && (*req.CGPA < 0 || *req.CGPA > 4) {
		return nil, ErrInvalidCGPA
	}

	user, err := s.userRepo.UpdateProfile(ctx, id, req.About, req.CGPA, req.Subjects)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if s.searchCache != nil {
		s.searchCache.Invalidate()
	}

	metrics.ProfileUpdates.Inc()
	logger.Info("Profile updated",
		zap.String("user_id", userID),
		zap.Bool("searchable", user.IsSearchable()))

	return user, nil
}
