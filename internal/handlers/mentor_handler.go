package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/services"
)

// MentorHandler handles mentor discovery endpoints
type MentorHandler struct {
	service services.MentorServiceInterface
}

// NewMentorHandler creates a new mentor handler
func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// Search handles GET /api/user/mentors/search
func (h *MentorHandler) Search(c *gin.Context) {
	filters := models.SearchFilters{
		Search:     c.Query("search"),
		Department: c.Query("department"),
	}

	if raw := c.Query("minCgpa"); raw != "" {
		minCgpa, err := strconv.ParseFloat(raw, 64)
		if err != nil || minCgpa < 0 || minCgpa > 4 {
			respondError(c, http.StatusBadRequest, "minCgpa must be a number between 0 and 4", err)
			return
		}
		filters.MinCGPA = &minCgpa
	}

	mentors, err := h.service.SearchMentors(c.Request.Context(), filters)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to search mentors", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(mentors),
		"mentors": mentors,
	})
}
