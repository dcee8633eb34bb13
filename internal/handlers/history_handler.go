package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub-backend/internal/services"
	"go.uber.org/zap"
)

// HistoryHandler serves the durable participation log
type HistoryHandler struct {
	historyService *services.HistoryService
	logger         *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *services.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// GetMine handles GET /api/history/me
func (h *HistoryHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	history, err := h.historyService.ForVolunteer(c.Request.Context(), userID)
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
