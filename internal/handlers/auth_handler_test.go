package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/services"
)

// mockAuthService is a mock implementation of services.AuthServiceInterface
type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

// mockResetService is a mock implementation of services.PasswordResetServiceInterface
type mockResetService struct {
	mock.Mock
}

func (m *mockResetService) RequestReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func setupAuthRouter(authSvc services.AuthServiceInterface, resetSvc services.PasswordResetServiceInterface) *gin.Engine {
	handler := NewAuthHandler(authSvc, nil, resetSvc)
	router := gin.New()
	router.POST("/api/auth/signup", handler.Signup)
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/forgot-password", handler.ForgotPassword)
	return router
}

func TestAuthHandler_Login_Success(t *testing.T) {
	authSvc := new(mockAuthService)
	router := setupAuthRouter(authSvc, nil)

	authSvc.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).Return(&models.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   "jwt-token",
	}, nil)

	w := httptest.NewRecorder()
	body := `{"email":"ada@example.com","password":"hunter22"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Login successful"`)
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	authSvc := new(mockAuthService)
	router := setupAuthRouter(authSvc, nil)

	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	body := `{"email":"ada@example.com","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, w.Body.String())
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	authSvc := new(mockAuthService)
	router := setupAuthRouter(authSvc, nil)

	w := httptest.NewRecorder()
	// batch outside the allowed set
	body := `{"firstName":"Ada","lastName":"Khan","email":"ada@example.com","phoneNumber":"0300","batch":"F99","department":"CS","campus":"New","password":"hunter22","role":"Mentee"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	assert.Contains(t, w.Body.String(), "Batch")
	authSvc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	authSvc := new(mockAuthService)
	router := setupAuthRouter(authSvc, nil)

	authSvc.On("Signup", mock.Anything, mock.Anything).Return(nil, services.ErrEmailTaken)

	w := httptest.NewRecorder()
	body := `{"firstName":"Ada","lastName":"Khan","email":"ada@example.com","phoneNumber":"0300","batch":"F23","department":"CS","campus":"New","password":"hunter22","role":"Mentee"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Email already registered"}`, w.Body.String())
}

func TestAuthHandler_ForgotPassword_SameShapeForUnknownEmail(t *testing.T) {
	resetSvc := new(mockResetService)
	router := setupAuthRouter(nil, resetSvc)

	resetSvc.On("RequestReset", mock.Anything, "nobody@example.com").Return(nil)
	resetSvc.On("RequestReset", mock.Anything, "known@example.com").Return(nil)

	send := func(email string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/forgot-password", strings.NewReader(`{"email":"`+email+`"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	unknown := send("nobody@example.com")
	known := send("known@example.com")

	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}
