package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/club-projects-api/internal/errors"
	"github.com/yukikurage/club-projects-api/internal/models"
)

// RequireRole allows only callers holding one of roles. It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !identity.HasRole(roles...) {
			apierrors.Forbidden(c, fmt.Sprintf("User role %s is not authorized to access this route", identity.Role))
			return
		}
		c.Next()
	}
}
