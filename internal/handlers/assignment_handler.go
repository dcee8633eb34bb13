package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AssignmentHandler exposes the assignment ledger over HTTP
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	matchingService   *services.MatchingService
	logger            *zap.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService *services.AssignmentService, matchingService *services.MatchingService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		matchingService:   matchingService,
		logger:            logger,
	}
}

// Create handles POST /api/assignments: the admin clicked "Match"
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, uErr := primitive.ObjectIDFromHex(req.UserID)
	eventID, eErr := primitive.ObjectIDFromHex(req.EventID)
	if uErr != nil || eErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId or eventId"})
		return
	}

	assignment, err := h.assignmentService.Assign(c.Request.Context(), userID, eventID, req.MatchScore)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "Event is already full"})
		case errors.Is(err, apperrors.ErrDuplicateAssignment):
			c.JSON(http.StatusConflict, gin.H{"error": "Volunteer already assigned to this event"})
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Volunteer matched successfully",
		"assignment": assignment,
	})
}

// ListForVolunteer handles GET /api/assignments/volunteers/:userId?tab=upcoming|past
func (h *AssignmentHandler) ListForVolunteer(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	tab := c.DefaultQuery("tab", "upcoming")
	views, err := h.assignmentService.ListForVolunteer(c.Request.Context(), userID, tab)
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListAll handles GET /api/assignments/history?status= (admin)
func (h *AssignmentHandler) ListAll(c *gin.Context) {
	status := models.AssignmentStatus(c.Query("status"))
	views, err := h.assignmentService.ListAll(c.Request.Context(), status)
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			respondValidation(c, ve)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetByID handles GET /api/assignments/:id
func (h *AssignmentHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	view, err := h.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateStatus handles PATCH /api/assignments/:id/status
func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.assignmentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "Event is already full"})
		default:
			if ve, ok := apperrors.AsValidation(err); ok {
				respondValidation(c, ve)
				return
			}
			respondServerError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "assignment": view})
}

// Matches handles GET /api/assignments/matches/:userId (admin): the ranked
// candidate list for one volunteer
func (h *AssignmentHandler) Matches(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	matches, err := h.matchingService.MatchesForVolunteer(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer profile not found"})
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}
