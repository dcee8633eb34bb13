package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
	"github.com/volunteerhub/volunteerhub-backend/internal/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// currentUserID extracts the authenticated principal's id set by the auth
// middleware
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondValidation writes the full field-to-message map for a validation
// failure
func respondValidation(c *gin.Context, ve *apperrors.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ve.Fields})
}

// respondServerError logs the underlying error with context and returns a
// generic message; internal detail never reaches the client.
func respondServerError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("requestId", c.GetString("RequestID")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
