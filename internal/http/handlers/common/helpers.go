package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contracts-backend/internal/http/middleware"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
	"github.com/ignatzorin/contracts-backend/internal/validation"
)

// CurrentProfileID извлекает id вызывающего профиля из контекста.
// Без AuthMiddleware id отсутствует, и обработчик отвечает 401.
func CurrentProfileID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextProfileIDKey)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	profileID, ok := raw.(uuid.UUID)
	if !ok || profileID == uuid.Nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return profileID, nil
}

// ParseUUIDParam разбирает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	return validation.ParseUUID(paramName, c.Param(paramName))
}

// BindJSON разбирает тело запроса; ошибка разбора становится INVALID_INPUT.
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInvalidInput, "ошибка валидации запроса")
	}
	return nil
}

// BindQuery разбирает параметры строки запроса; ошибка разбора становится INVALID_INPUT.
func BindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInvalidInput, "некорректные параметры запроса")
	}
	return nil
}

// RespondAppError пишет ошибку в едином формате и прерывает цепочку.
func RespondAppError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
