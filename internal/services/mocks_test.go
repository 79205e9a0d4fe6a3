package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/pkg/googleauth"
)

// MockUserRepository is a mock implementation of repository.UserDataSource
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, about string, cgpa *float64, subjects []string) (*models.User, error) {
	args := m.Called(ctx, id, about, cgpa, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id bson.ObjectID, tokenHash string, expires time.Time) error {
	args := m.Called(ctx, id, tokenHash, expires)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SearchMentors(ctx context.Context, filters models.SearchFilters) ([]*models.User, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockConnectionRequestRepository is a mock implementation of repository.ConnectionRequestDataSource
type MockConnectionRequestRepository struct {
	mock.Mock
}

func (m *MockConnectionRequestRepository) Create(ctx context.Context, menteeID, mentorID bson.ObjectID, message string) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, menteeID, mentorID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) ListByMentor(ctx context.Context, mentorID bson.ObjectID, status models.RequestStatus) ([]*models.ConnectionRequest, error) {
	args := m.Called(ctx, mentorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) ListByMentee(ctx context.Context, menteeID bson.ObjectID) ([]*models.ConnectionRequest, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) GetByIDForMentor(ctx context.Context, requestID, mentorID bson.ObjectID) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, requestID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRequestRepository) ResolveIfPending(ctx context.Context, requestID, mentorID bson.ObjectID, newStatus models.RequestStatus) (bool, error) {
	args := m.Called(ctx, requestID, mentorID, newStatus)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Sender
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordResetEmail(to, resetURL string) error {
	args := m.Called(to, resetURL)
	return args.Error(0)
}

// MockGoogleVerifier is a mock implementation of googleauth.Verifier
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, rawToken string) (*googleauth.Identity, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googleauth.Identity), args.Error(1)
}
