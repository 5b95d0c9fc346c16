package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/pplp-engine/internal/api/shared/errors"
	"github.com/feral-file/pplp-engine/internal/logger"
)

const REQUEST_ID_HEADER = "X-Request-ID"

// RequestID assigns every request an id, reusing a caller supplied one, and attaches a sentry hub
// tagged with it to the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(REQUEST_ID_HEADER, id)
		c.Set(REQUEST_ID_HEADER, id)

		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetTag("request_id", id)
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		c.Next()
	}
}

// Logger returns a gin middleware for structured logging using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(REQUEST_ID_HEADER)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.WarnCtx(c.Request.Context(), "API request failed", fields...)
			return
		}
		logger.InfoCtx(c.Request.Context(), "API request", fields...)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": apierrors.NewInternalError("Internal server error"),
				})
			}
		}()
		c.Next()
	}
}
