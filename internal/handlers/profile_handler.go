package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorwise/mentorwise-api/internal/middleware"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/services"
)

// ProfileHandler handles the caller's own profile endpoints
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me handles GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"profile":       user.Public(),
		"mentorProfile": user.Profile(),
	})
}

// Update handles PUT /api/profile/update
func (h *ProfileHandler) Update(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCGPA):
			respondError(c, http.StatusBadRequest, "CGPA must be between 0 and 4", err)
		case errors.Is(err, services.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found", err)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update profile", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Profile updated successfully",
		"profile":       user.Public(),
		"mentorProfile": user.Profile(),
	})
}
