package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Sarees Store API. Enjoy seamless shopping with this API.

The following are the endpoint groups for this API:

AUTH (/api/auth)
- POST "/signup", "/signin", "/signout" - Account access
- GET "/me" - Current user

CATALOG (/api/products)
- GET "/" - Filter, sort and page products
- GET "/featured", "/search", "/categories", "/colors", "/fabrics"
- GET "/:id", "/:id/reviews"

CART (/api/cart), WISHLIST (/api/wishlist)
- GET, POST, PUT and DELETE the caller's rows

ORDERS (/api/orders)
- POST "/" - Checkout the cart
- POST "/:id/payment", "/:id/payment/verify" - Pay with Razorpay

ADMIN (/api/admin)
- Dashboard, users, products, orders, coupons and banners`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func HealthCheck(ctx *gin.Context) {
	sqlDB, err := initializers.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		initializers.Logger.Error("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
