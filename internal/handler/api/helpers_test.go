//go:build unit

package api_test

import (
	"zurbo/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// asActor stands in for RequireAuth.
func asActor(userID uuid.UUID, role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}
