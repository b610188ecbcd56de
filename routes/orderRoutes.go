package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.Checkout)
		orders.GET("", controllers.GetMyOrders)
		orders.GET("/:id", controllers.GetMyOrder)
		orders.POST("/:id/payment", controllers.CreatePayment)
		orders.POST("/:id/payment/verify", controllers.VerifyPayment)
	}

	server.POST("/api/coupons/validate", middlewares.RequireAuth(), controllers.ValidateCoupon)
}

func BannerRoutes(server *gin.Engine) {
	banners := server.Group("/api/banners")
	{
		banners.GET("", controllers.GetActiveBanners)
		banners.GET("/all", controllers.GetAllBanners)
		banners.GET("/:id", controllers.GetBanner)
	}
}
