package services

import (
	"context"

	"github.com/mentorwise/mentorwise-api/internal/models"
)

// AuthServiceInterface defines the interface for local authentication
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

// GoogleAuthServiceInterface defines the interface for Google sign-in
type GoogleAuthServiceInterface interface {
	VerifyToken(ctx context.Context, rawToken string) (*models.GoogleVerifyResponse, error)
	CompleteSignup(ctx context.Context, req *models.GoogleCompleteRequest) (*models.AuthResponse, error)
}

// PasswordResetServiceInterface defines the interface for the reset flow
type PasswordResetServiceInterface interface {
	RequestReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, newPassword string) error
}

// ProfileServiceInterface defines the interface for own-profile operations
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
}

// MentorServiceInterface defines the interface for mentor discovery
type MentorServiceInterface interface {
	SearchMentors(ctx context.Context, filters models.SearchFilters) ([]models.PublicUser, error)
}

// ConnectionServiceInterface defines the interface for the request lifecycle
type ConnectionServiceInterface interface {
	Send(ctx context.Context, menteeID string, req *models.SendConnectionRequest) (*models.ConnectionRequestView, error)
	ListReceived(ctx context.Context, mentorID string) (*models.ReceivedRequestsResponse, error)
	ListSent(ctx context.Context, menteeID string) (*models.SentRequestsResponse, error)
	Resolve(ctx context.Context, mentorID, requestID string, status models.RequestStatus) (*models.ConnectionRequestView, error)
}
