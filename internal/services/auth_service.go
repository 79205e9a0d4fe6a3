package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
	"github.com/mentorwise/mentorwise-api/pkg/jwt"
	"github.com/mentorwise/mentorwise-api/pkg/logger"
	"github.com/mentorwise/mentorwise-api/pkg/metrics"
)

const bcryptCost = 10

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles local signup and login
type AuthService struct {
	userRepo     repository.UserDataSource
	tokenManager *jwt.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserDataSource, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokenManager: jwt.NewTokenManager(
			cfg.Auth.JWTSecret,
			cfg.Auth.JWTIssuer,
			cfg.Auth.TokenTTLHours,
		),
	}
}

// TokenManager exposes the token manager for the auth middleware
func (s *AuthService) TokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// Signup creates a local account with a bcrypt-hashed password and issues a
// session token. The plaintext password is never stored.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	start := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		metrics.Signups.WithLabelValues("error", "local").Inc()
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        NormalizeEmail(req.Email),
		PhoneNumber:  req.PhoneNumber,
		Batch:        req.Batch,
		Department:   req.Department,
		Campus:       req.Campus,
		Role:         models.Role(req.Role),
		Password:     string(hash),
		AuthProvider: models.ProviderLocal,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.Signups.WithLabelValues("duplicate", "local").Inc()
			return nil, ErrEmailTaken
		}
		metrics.Signups.WithLabelValues("error", "local").Inc()
		logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	token, err := s.tokenManager.GenerateToken(created.ID.Hex(), created.Email)
	if err != nil {
		metrics.Signups.WithLabelValues("error", "local").Inc()
		logger.Error("Failed to generate session token", zap.String("user_id", created.ID.Hex()), zap.Error(err))
		return nil, err
	}

	metrics.Signups.WithLabelValues("success", "local").Inc()
	logger.Info("User signed up",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", string(created.Role)),
		zap.Duration("duration", time.Since(start)))

	return &models.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    created.Public(),
	}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both map to ErrInvalidCredentials so the response does not
// reveal which one failed.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.Logins.WithLabelValues("unknown_email").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, err
	}

	if !VerifyPassword(user, req.Password) {
		metrics.Logins.WithLabelValues("wrong_password").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		logger.Error("Failed to generate session token", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return nil, err
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in", zap.String("user_id", user.ID.Hex()))

	return &models.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	}, nil
}

// VerifyPassword compares a candidate against the stored bcrypt hash.
// Accounts without a password (Google-only) never verify.
func VerifyPassword(user *models.User, candidate string) bool {
	if user.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive everywhere
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
