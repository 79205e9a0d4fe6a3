package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/googleauth"
	"github.com/mentorwise/mentorwise-api/pkg/jwt"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

var ErrGoogleVerification = errors.New("failed to verify google token")

// GoogleAuthService handles Google sign-in and deferred onboarding.
// Verification failures are surfaced to the caller without retry; they are
// not transient from the caller's perspective.
type GoogleAuthService struct {
	userRepo     repository.UserDataSource
	verifier     googleauth.Verifier
	tokenManager *jwt.TokenManager
}

// NewGoogleAuthService creates a new GoogleAuthService
func NewGoogleAuthService(userRepo repository.UserDataSource, verifier googleauth.Verifier, cfg *config.Config) *GoogleAuthService {
	return &GoogleAuthService{
		userRepo: userRepo,
		verifier: verifier,
		tokenManager: jwt.NewTokenManager(
			cfg.Auth.JWTSecret,
			cfg.Auth.JWTIssuer,
			cfg.Auth.TokenTTLHours,
		),
	}
}

// VerifyToken validates the Google ID token. When an account with the
// token's email already exists this is a login: a session token is issued
// immediately. Otherwise the extracted identity is returned so the client
// can collect the remaining profile fields; no record is created yet.
func (s *GoogleAuthService) VerifyToken(ctx context.Context, rawToken string) (*models.GoogleVerifyResponse, error) {
	start := time.Now()

	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		metrics.GoogleAuthRequests.WithLabelValues("invalid_token").Inc()
		logger.Warn("Google token verification failed", zap.Error(err))
		return nil, ErrGoogleVerification
	}

	email := NormalizeEmail(identity.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		metrics.GoogleAuthRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	if user != nil {
		token, tokenErr := s.tokenManager.GenerateToken(user.ID.Hex(), user.Email)
		if tokenErr != nil {
			metrics.GoogleAuthRequests.WithLabelValues("error").Inc()
			return nil, tokenErr
		}

		metrics.GoogleAuthRequests.WithLabelValues("login").Inc()
		logger.Info("Google login",
			zap.String("user_id", user.ID.Hex()),
			zap.Duration("duration", time.Since(start)))

		publicUser := user.Public()
		return &models.GoogleVerifyResponse{
			Success:    true,
			UserExists: true,
			Message:    "Login successful",
			Token:      token,
			User:       &publicUser,
		}, nil
	}

	metrics.GoogleAuthRequests.WithLabelValues("onboarding").Inc()
	return &models.GoogleVerifyResponse{
		Success:    true,
		UserExists: false,
		Message:    "New user - complete profile",
		GoogleData: &models.GoogleData{
			GoogleID:  identity.GoogleID,
			Email:     email,
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
		},
	}, nil
}

// CompleteSignup finishes onboarding for a verified Google identity. A race
// that created the account between verification and completion is caught by
// the unique email index on insert and surfaced as ErrEmailTaken.
func (s *GoogleAuthService) CompleteSignup(ctx context.Context, req *models.GoogleCompleteRequest) (*models.AuthResponse, error) {
	googleID := req.GoogleID
	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        NormalizeEmail(req.Email),
		PhoneNumber:  req.PhoneNumber,
		Batch:        req.Batch,
		Department:   req.Department,
		Campus:       req.Campus,
		Role:         models.Role(req.Role),
		AuthProvider: models.ProviderGoogle,
		GoogleID:     &googleID,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.Signups.WithLabelValues("duplicate", "google").Inc()
			return nil, ErrEmailTaken
		}
		metrics.Signups.WithLabelValues("error", "google").Inc()
		logger.Error("Failed to create google-linked user", zap.Error(err))
		return nil, err
	}

	token, err := s.tokenManager.GenerateToken(created.ID.Hex(), created.Email)
	if err != nil {
		metrics.Signups.WithLabelValues("error", "google").Inc()
		return nil, err
	}

	metrics.Signups.WithLabelValues("success", "google").Inc()
	logger.Info("Google signup completed",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", string(created.Role)))

	return &models.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    created.Public(),
	}, nil
}
