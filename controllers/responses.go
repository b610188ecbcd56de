package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/middlewares"
	"github.com/hsz/sarees-api/utils"
	"gorm.io/gorm"
)

// Standard response messages
const (
	msgInvalidInput         = "invalid input"
	msgInvalidID            = "invalid id"
	msgInternalServerError  = "Internal server error"
	msgEmailTaken           = "Error: Email is already taken!"
	msgInvalidCredentials   = "invalid email or password"
	msgFailedToHashPassword = "failed to hash password"
	msgFailedToGenerate     = "failed to generate token"
	msgUnauthorized         = "Unauthorized"
	msgProductNotFound      = "Product not found"
	msgInsufficientStock    = "Insufficient stock"
	msgUploadsDisabled      = "Image uploads are not configured"
	msgPaymentsDisabled     = "Payments are not configured"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// sendNotFound answers 404 with an empty body.
func sendNotFound(ctx *gin.Context) {
	ctx.Status(http.StatusNotFound)
}

// sendDBError maps a missing record to 404 and logs anything else as a 500.
func sendDBError(ctx *gin.Context, err error, action string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sendNotFound(ctx)
		return
	}
	initializers.Logger.Error(action, "path", ctx.FullPath(), "error", err)
	sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

func currentUser(ctx *gin.Context) *utils.Claims {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		return &utils.Claims{}
	}
	return claims
}

type page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func newPage[T any](content []T, total int64, pageIndex, size int) page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	return page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          pageIndex,
		Size:          size,
		First:         pageIndex == 0,
		Last:          pageIndex+1 >= totalPages,
	}
}

// pageParams reads 0-based page and size query parameters.
func pageParams(ctx *gin.Context, defaultSize int) (int, int) {
	pageIndex, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	if err != nil || pageIndex < 0 {
		pageIndex = 0
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if size > 100 {
		size = 100
	}
	return pageIndex, size
}
