package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/pkg/apperror"
	"github.com/ignatzorin/contracts-backend/internal/repository"
)

// ContextProfileIDKey - ключ id вызывающего профиля в gin.Context.
const ContextProfileIDKey = "profileID"

// TokenParser проверяет access токен и возвращает id профиля и роль.
type TokenParser interface {
	ParseAccess(token string) (uuid.UUID, string, error)
}

// AuthMiddleware проверяет JWT access токен и загружает профиль вызывающего.
// Токен профиля, которого нет в базе, отклоняется с 401.
func AuthMiddleware(tokens TokenParser, profiles domainrepo.ProfileReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		profileID, _, err := tokens.ParseAccess(raw)
		if err != nil || profileID == uuid.Nil {
			AbortWithError(c, apperror.New(apperror.ErrCodeUnauthorized, "токен невалиден"))
			return
		}

		profile, err := profiles.GetByID(c.Request.Context(), profileID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				AbortWithError(c, apperror.New(apperror.ErrCodeUnauthorized, "профиль не найден"))
				return
			}
			AbortWithError(c, apperror.Query(err, "не удалось загрузить профиль"))
			return
		}

		c.Set(ContextProfileIDKey, profile.ID)
		c.Next()
	}
}
