package handler

import (
	"fmt"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMiddleware renders the last error attached to the context.
// Handlers report failures with c.Error and never write error bodies themselves.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := domain.AsAppError(c.Errors.Last().Err)
		status := appErr.Kind.Status()

		if status >= 500 {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(appErr),
			)
		}

		if c.Writer.Written() {
			return
		}

		c.JSON(status, dto.ErrorResponse{
			StatusCode: status,
			Timestamp:  time.Now().UTC(),
			Message:    appErr.Message,
			Path:       c.Request.URL.Path,
		})
	}
}

// RecoveryHandler turns a panic into an internal error for ErrorMiddleware
func RecoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		_ = c.Error(domain.NewInternalError(fmt.Errorf("panic: %v", recovered)))
		c.Abort()
	}
}

// bindError reports a malformed request
func bindError(c *gin.Context, err error) {
	_ = c.Error(domain.Wrap(domain.KindValidation, err.Error(), err))
}
