package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/contracts-backend/internal/validation"
)

// UUIDValidator проверяет, что параметр пути является валидным UUID.
// Использование: api.GET("/contracts/:id", UUIDValidator("id"), handler.GetContract)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := validation.ParseUUID(paramName, c.Param(paramName)); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
