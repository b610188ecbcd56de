package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/hsz/sarees-api/utils"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(), func(ctx *gin.Context) {
		claims, _ := CurrentUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	router.GET("/admin", RequireAuth(), RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func issue(t *testing.T, role models.Role) (string, *utils.Claims) {
	t.Helper()
	token, claims, err := utils.GenerateToken(models.User{ID: 1, Email: "a@example.com", Role: role}, initializers.Config.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token, claims
}

func TestRequireAuth(t *testing.T) {
	initializers.Config.JWTSecret = "test-secret"
	utils.Revocations = utils.NewMemoryRevocationStore()
	router := newTestRouter()

	userToken, userClaims := issue(t, models.RoleUser)
	adminToken, _ := issue(t, models.RoleAdmin)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing header", path: "/me", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/me", header: "Basic " + userToken, want: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid user", path: "/me", header: "Bearer " + userToken, want: http.StatusOK},
		{name: "user on admin route", path: "/admin", header: "Bearer " + userToken, want: http.StatusForbidden},
		{name: "admin on admin route", path: "/admin", header: "Bearer " + adminToken, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	t.Run("revoked token", func(t *testing.T) {
		if err := utils.Revocations.Revoke(context.Background(), userClaims.ID, userClaims.ExpiresAt.Time); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}
