package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
)

// RequireAdmin rejects requests whose principal lacks the admin flag. It must
// run after SessionAuth; an unresolved principal is treated as unauthenticated
// rather than forbidden.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			respondUnauthorized(c, "User not authenticated")
			return
		}

		if !principal.IsAdmin {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden,
				"Administrator permissions are required for this operation"))
			c.Abort()
			return
		}

		c.Next()
	}
}
