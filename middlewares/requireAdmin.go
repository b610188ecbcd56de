package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/models"
)

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireRole must run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		if claims.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		ctx.Next()
	}
}
