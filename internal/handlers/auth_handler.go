package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/services"
)

// AuthHandler handles the public authentication endpoints
type AuthHandler struct {
	authService   services.AuthServiceInterface
	googleService services.GoogleAuthServiceInterface
	resetService  services.PasswordResetServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService services.AuthServiceInterface,
	googleService services.GoogleAuthServiceInterface,
	resetService services.PasswordResetServiceInterface,
) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		googleService: googleService,
		resetService:  resetService,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Email already registered", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to login", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleVerify handles POST /api/auth/google/verify
func (h *AuthHandler) GoogleVerify(c *gin.Context) {
	var req models.GoogleVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.googleService.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to verify Google token", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleComplete handles POST /api/auth/google/complete
func (h *AuthHandler) GoogleComplete(c *gin.Context) {
	var req models.GoogleCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.googleService.CompleteSignup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Email already registered", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ForgotPassword handles POST /api/auth/forgot-password. The success response
// is identical for known and unknown emails.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, services.ErrWrongAuthProvider) {
			respondError(c, http.StatusBadRequest, "This account uses Google Sign-In. Please login with Google.", err)
			return
		}
		if errors.Is(err, services.ErrEmailDelivery) {
			respondError(c, http.StatusInternalServerError, "Failed to send reset email. Please try again later.", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to process request", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account with that email exists, a password reset link has been sent.",
	})
}

// ResetPassword handles POST /api/auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	token := c.Param("token")
	if err := h.resetService.CompleteReset(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			respondError(c, http.StatusBadRequest, "Invalid or expired reset token", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to reset password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset successfully. You can now login.",
	})
}
