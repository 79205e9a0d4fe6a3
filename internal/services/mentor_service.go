package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/internal/cache"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

// MentorService serves the mentor discovery surface
type MentorService struct {
	userRepo    repository.UserDataSource
	searchCache *cache.SearchCache
}

// NewMentorService creates a new MentorService. A nil searchCache disables
// caching entirely.
func NewMentorService(userRepo repository.UserDataSource, searchCache *cache.SearchCache) *MentorService {
	return &MentorService{
		userRepo:    userRepo,
		searchCache: searchCache,
	}
}

// SearchMentors returns searchable mentors matching the filters. Results are
// served from the cache when an identical filter combination was queried
// within the TTL.
func (s *MentorService) SearchMentors(ctx context.Context, filters models.SearchFilters) ([]models.PublicUser, error) {
	start := time.Now()
	metrics.MentorSearches.Inc()

	var cacheKey string
	if s.searchCache != nil {
		cacheKey = s.searchCache.Key(filters)
		if cached, found := s.searchCache.Get(cacheKey); found {
			return toPublicUsers(cached), nil
		}
	}

	mentors, err := s.userRepo.SearchMentors(ctx, filters)
	if err != nil {
		logger.Error("Mentor search failed", zap.Error(err))
		return nil, err
	}

	if s.searchCache != nil {
		s.searchCache.Set(cacheKey, mentors)
	}

	logger.Debug("Mentor search completed",
		zap.Int("results", len(mentors)),
		zap.Duration("duration", time.Since(start)))

	return toPublicUsers(mentors), nil
}

func toPublicUsers(users []*models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
