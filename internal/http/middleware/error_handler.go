package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contracts-backend/internal/dto"
	"github.com/ignatzorin/contracts-backend/internal/logger"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
)

// ErrorHandler отдаёт последнюю ошибку из c.Errors, если обработчик сам не записал ответ.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		AbortWithError(c, c.Errors.Last().Err)
	}
}

// AbortWithError прерывает цепочку и пишет ошибку в формате {"error","code","details"}.
// Причина ошибки уходит только в лог.
func AbortWithError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal(err)
	}

	entry := logger.WithFields(logrus.Fields{
		"code":       appErr.Code,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString(ContextRequestIDKey),
	})
	if appErr.Cause != nil {
		entry = entry.WithError(appErr.Cause)
	}
	if appErr.IsClientError() {
		entry.Debug(appErr.Message)
	} else {
		entry.Error(appErr.Message)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, dto.ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}
