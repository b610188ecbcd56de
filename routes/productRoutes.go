package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/api/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/featured", controllers.GetFeaturedProducts)
		products.GET("/search", controllers.SearchProducts)
		products.GET("/categories", controllers.GetCategories)
		products.GET("/colors", controllers.GetColors)
		products.GET("/fabrics", controllers.GetFabrics)
		products.GET("/category/:category", controllers.GetProductsByCategory)
		products.GET("/:id", controllers.GetProduct)
		products.GET("/:id/reviews", controllers.GetProductReviews)
		products.POST("/:id/reviews", middlewares.RequireAuth(), controllers.CreateReview)
		products.DELETE("/:id/reviews/:reviewId", middlewares.RequireAuth(), controllers.DeleteReview)
	}
}
