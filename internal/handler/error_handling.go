package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heavytime-server/internal/models"
)

// handleServiceError maps service-layer errors onto HTTP responses using
// the standard error envelope.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Invalid request", Details: err.Error()}
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Story not found"}
	case errors.Is(err, models.ErrPoemGenerationFailed):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "Failed to generate poem", Details: err.Error()}
	case errors.Is(err, models.ErrAudioGenerationFailed):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "Failed to generate audio", Details: err.Error()}
	case errors.Is(err, models.ErrComicGenerationFailed):
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "Failed to generate comic", Details: err.Error()}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
