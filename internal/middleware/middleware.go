package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/matrixgesnet/proyecto-cursos/internal/services"
)

// PrincipalKey is the gin context key under which SessionAuth stores the
// resolved principal.
const PrincipalKey = "principal"

// SessionAuth resolves the bearer token into a principal and binds it to the
// request context. Requests without a live session are rejected before any
// handler runs.
func SessionAuth(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			respondUnauthorized(c, "Bearer token is empty")
			return
		}

		principal, err := sessions.Current(token)
		if err != nil {
			respondUnauthorized(c, "Session is invalid or has ended. Please log in again.")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal bound to the request, if any.
func CurrentPrincipal(c *gin.Context) (*models.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*models.Principal)
	return principal, ok
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, message))
	c.Abort()
}
