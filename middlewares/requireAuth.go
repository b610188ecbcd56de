package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/utils"
)

const userContextKey = "user"

// RequireAuth accepts "Authorization: Bearer <jwt>" and stores the claims
// under "user" for the handlers.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		claims, err := utils.ParseToken(strings.TrimSpace(tokenString), initializers.Config.JWTSecret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		revoked, err := utils.Revocations.IsRevoked(ctx.Request.Context(), claims.ID)
		if err != nil {
			initializers.Logger.Error("token revocation lookup failed", "error", err)
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to verify token"})
			return
		}
		if revoked {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
			return
		}

		ctx.Set(userContextKey, claims)
		ctx.Next()
	}
}

// CurrentUser returns the claims stored by RequireAuth.
func CurrentUser(ctx *gin.Context) (*utils.Claims, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
