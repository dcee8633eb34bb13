package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/models"
	"github.com/volunteerhub/volunteerhub-backend/internal/services"
	"github.com/volunteerhub/volunteerhub-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventHandler handles event CRUD requests
type EventHandler struct {
	eventService *services.EventService
	logger       *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// GetAll handles GET /api/events
func (h *EventHandler) GetAll(c *gin.Context) {
	events, err := h.eventService.GetAll(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetByID handles GET /api/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Create handles POST /api/events (admin)
func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := utils.CheckStruct(&req); err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			respondValidation(c, ve)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update handles PUT /api/events/:id (admin)
func (h *EventHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := utils.CheckStruct(&req); err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			respondValidation(c, ve)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id (admin)
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
