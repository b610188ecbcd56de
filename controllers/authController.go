package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/hsz/sarees-api/utils"
	"gorm.io/gorm"
)

func checkUserExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func userInfo(user models.User) gin.H {
	return gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"address": user.Address,
		"phone":   user.Phone,
		"roles":   user.Authorities(),
	}
}

func registerAccount(ctx *gin.Context, role models.Role, successMessage string) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	email := strings.ToLower(strings.TrimSpace(signUpData.Email))

	exists, err := checkUserExists(initializers.DB, email)
	if err != nil {
		initializers.Logger.Error("database error during user check", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
		return
	}

	hashedPassword, err := utils.HashPassword(signUpData.Password)
	if err != nil {
		initializers.Logger.Error("password hashing error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(signUpData.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Address:  signUpData.Address,
		Phone:    signUpData.Phone,
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		// a concurrent signup may have taken the email after the check
		if exists, _ := checkUserExists(initializers.DB, email); exists {
			sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
			return
		}
		initializers.Logger.Error("user creation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	initializers.Logger.Info("account registered", "user_id", user.ID, "role", user.Role)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": successMessage})
}

// Signup registers a customer account.
func Signup(ctx *gin.Context) {
	registerAccount(ctx, models.RoleUser, "User registered successfully!")
}

// AdminSignup lets an existing admin create another admin account.
func AdminSignup(ctx *gin.Context) {
	registerAccount(ctx, models.RoleAdmin, "Admin registered successfully!")
}

// Signin exchanges credentials for a bearer token.
func Signin(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(strings.ToLower(strings.TrimSpace(loginData.Email)))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			initializers.Logger.Error("user lookup failed", "error", err)
		}
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, _, err := utils.GenerateToken(user, initializers.Config.JWTSecret, initializers.Config.JWTTTL)
	if err != nil {
		initializers.Logger.Error("JWT generation error", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerate)
		return
	}

	response := userInfo(user)
	response["token"] = token
	response["type"] = "Bearer"
	sendJSONResponse(ctx, http.StatusOK, response)
}

func GetCurrentUser(ctx *gin.Context) {
	var user models.User
	if err := initializers.DB.First(&user, currentUser(ctx).UserID).Error; err != nil {
		sendDBError(ctx, err, "failed to load current user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, userInfo(user))
}

// PromoteToAdmin upgrades the caller to ADMIN. It is a bootstrap aid and is
// refused unless ALLOW_SELF_PROMOTION is set.
func PromoteToAdmin(ctx *gin.Context) {
	if !initializers.Config.AllowSelfPromotion {
		sendErrorResponse(ctx, http.StatusForbidden, "Self promotion is disabled")
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ?", currentUser(ctx).UserID).
		Update("role", models.RoleAdmin)
	if result.Error != nil {
		sendDBError(ctx, result.Error, "failed to promote user")
		return
	}
	if result.RowsAffected == 0 {
		sendNotFound(ctx)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User promoted to admin successfully! Please sign in again."})
}

// Signout revokes the presented token for the rest of its lifetime.
func Signout(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims.ExpiresAt == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := utils.Revocations.Revoke(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		initializers.Logger.Error("token revocation failed", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Signed out successfully"})
}
