package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/logger"
)

// ErrorHandler renders the last error recorded with c.Error as
// {"error":{"code","message"}}. Handlers and middleware only record errors;
// this is the single place that writes error bodies. Anything that is not an
// AppError becomes INTERNAL_ERROR and its cause stays in the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := toAppError(c.Errors.Last().Err)
		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}

func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
