package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/api/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/dashboard/stats", controllers.GetDashboardStats)
		admin.GET("/dashboard/recent-orders", controllers.GetRecentOrders)
		admin.GET("/users/count", controllers.GetUserCount)
		admin.GET("/users", controllers.GetUsers)
		admin.DELETE("/users/:id", controllers.DeleteUser)
		admin.PUT("/users/:id/role", controllers.UpdateUserRole)
		admin.GET("/revenue/total", controllers.GetTotalRevenue)
		admin.GET("/revenue/monthly", controllers.GetMonthlyRevenue)
		admin.GET("/analytics/overview", controllers.GetAnalyticsOverview)
	}

	products := admin.Group("/products")
	{
		products.GET("", controllers.AdminGetProducts)
		products.POST("", controllers.CreateProduct)
		products.GET("/count", controllers.GetProductCount)
		products.GET("/top-selling", controllers.GetTopSellingProducts)
		products.GET("/categories", controllers.AdminGetCategories)
		products.GET("/colors", controllers.AdminGetColors)
		products.GET("/fabrics", controllers.AdminGetFabrics)
		products.GET("/featured", controllers.AdminGetFeaturedProducts)
		products.GET("/low-stock", controllers.GetLowStockProducts)
		products.GET("/stats", controllers.GetProductStats)
		products.GET("/export", controllers.ExportProducts)
		products.POST("/import", controllers.ImportProducts)
		products.GET("/:id", controllers.AdminGetProduct)
		products.PUT("/:id", controllers.UpdateProduct)
		products.DELETE("/:id", controllers.DeleteProduct)
		products.PUT("/:id/toggle-featured", controllers.ToggleProductFeatured)
		products.PUT("/:id/toggle-active", controllers.ToggleProductActive)
		products.PUT("/:id/update-stock", controllers.UpdateProductStock)
		products.POST("/:id/images", controllers.UploadProductImages)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", controllers.GetOrders)
		orders.GET("/count", controllers.GetOrderCount)
		orders.GET("/stats", controllers.GetOrderStats)
		orders.GET("/by-status/:status", controllers.GetOrdersByStatus)
		orders.GET("/:id", controllers.GetOrderByID)
		orders.PUT("/:id/status", controllers.UpdateOrderStatus)
		orders.PUT("/:id/payment-status", controllers.UpdatePaymentStatus)
		orders.DELETE("/:id", controllers.DeleteOrder)
	}

	coupons := admin.Group("/coupons")
	{
		coupons.GET("", controllers.GetCoupons)
		coupons.POST("", controllers.CreateCoupon)
		coupons.GET("/:id", controllers.GetCoupon)
		coupons.PUT("/:id", controllers.UpdateCoupon)
		coupons.DELETE("/:id", controllers.DeleteCoupon)
		coupons.PUT("/:id/toggle-active", controllers.ToggleCouponActive)
	}

	banners := admin.Group("/banners")
	{
		banners.POST("", controllers.CreateBanner)
		banners.PUT("/:id", controllers.UpdateBanner)
		banners.DELETE("/:id", controllers.DeleteBanner)
	}
}
