package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorwise/mentorwise-api/internal/middleware"
	"github.com/mentorwise/mentorwise-api/internal/models"
	"github.com/mentorwise/mentorwise-api/internal/services"
)

// ConnectionHandler handles the connection request endpoints
type ConnectionHandler struct {
	service services.ConnectionServiceInterface
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(service services.ConnectionServiceInterface) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// Send handles POST /api/connections/request
func (h *ConnectionHandler) Send(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	var req models.SendConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	request, err := h.service.Send(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMentorNotFound):
			respondError(c, http.StatusNotFound, "Mentor not found", err)
		case errors.Is(err, services.ErrNotAMentor):
			respondError(c, http.StatusBadRequest, "You can only send requests to mentors", err)
		case errors.Is(err, services.ErrSelfRequest):
			respondError(c, http.StatusBadRequest, "You cannot send a request to yourself", err)
		case errors.Is(err, services.ErrDuplicateRequest):
			respondError(c, http.StatusBadRequest, "You have already sent a request to this mentor", err)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to send connection request", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Connection request sent successfully",
		"request": request,
	})
}

// Received handles GET /api/connections/requests/received
func (h *ConnectionHandler) Received(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	resp, err := h.service.ListReceived(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch received requests", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Sent handles GET /api/connections/requests/sent
func (h *ConnectionHandler) Sent(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	resp, err := h.service.ListSent(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch sent requests", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Resolve handles PATCH /api/connections/requests/:requestId
func (h *ConnectionHandler) Resolve(c *gin.Context) {
	claims, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "No token provided. Please login.", nil)
		return
	}

	var req models.ResolveConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	request, err := h.service.Resolve(c.Request.Context(), claims.UserID, c.Param("requestId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, "Status must be accepted or rejected", err)
		case errors.Is(err, services.ErrRequestNotFound):
			respondError(c, http.StatusNotFound, "Connection request not found", err)
		case errors.Is(err, services.ErrAlreadyResolved):
			respondError(c, http.StatusBadRequest, "This request has already been resolved", err)
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update connection request", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connection request updated",
		"request": request,
	})
}
