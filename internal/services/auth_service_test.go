package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorwise/mentorwise-api/config"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{FrontendURL: "https://mentorwise.app"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			JWTIssuer:            "mentorwise-api",
			TokenTTLHours:        168,
			ResetTokenTTLMinutes: 60,
		},
	}
}

func signupRequest() *models.SignupRequest {
	return &models.SignupRequest{
		FirstName:   "Ada",
		LastName:    "Khan",
		Email:       "Ada.Khan@Example.com",
		PhoneNumber: "03001234567",
		Batch:       "F23",
		Department:  "CS",
		Campus:      "New",
		Password:    "hunter22",
		Role:        "Mentee",
	}
}

func TestAuthService_Signup_HashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig())

	var stored *models.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
			stored.ID = bson.NewObjectID()
		}).
		Return(&models.User{ID: bson.NewObjectID(), Email: "ada.khan@example.com", Role: models.RoleMentee}, nil)

	resp, err := svc.Signup(context.Background(), signupRequest())
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Account created successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)

	assert.Equal(t, "ada.khan@example.com", stored.Email)
	assert.Equal(t, models.ProviderLocal, stored.AuthProvider)
	assert.NotEqual(t, "hunter22", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")))
	repo.AssertExpectations(t)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrDuplicateKey)

	_, err := svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcryptCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:           bson.NewObjectID(),
		Email:        "ada.khan@example.com",
		Password:     string(hash),
		AuthProvider: models.ProviderLocal,
	}
	repo.On("GetByEmail", mock.Anything, "ada.khan@example.com").Return(user, nil)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "Ada.Khan@example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcryptCost)
	assert.NoError(t, err)

	user := &models.User{ID: bson.NewObjectID(), Email: "ada.khan@example.com", Password: string(hash)}
	repo.On("GetByEmail", mock.Anything, "ada.khan@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ada.khan@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, testConfig())

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyPassword_GoogleAccountNeverVerifies(t *testing.T) {
	user := &models.User{AuthProvider: models.ProviderGoogle}
	assert.False(t, VerifyPassword(user, ""))
	assert.False(t, VerifyPassword(user, "anything"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
