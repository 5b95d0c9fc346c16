package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/pplp-engine/internal/api/shared/errors"
	"github.com/feral-file/pplp-engine/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, apiErr *apierrors.APIError) {
	c.JSON(apiErr.Status, errorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError sends a 422 Unprocessable Entity response
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, apierrors.NewValidationError(details))
}

// respondError maps an executor error to its response. Server side failures are logged.
func respondError(c *gin.Context, err error, fields ...zap.Field) {
	apiErr := apierrors.FromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	}
	respondWithError(c, apiErr)
}
