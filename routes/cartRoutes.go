package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/api/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("/add", controllers.AddToCart)
		cart.PUT("/update/:cartId", controllers.UpdateCartItem)
		cart.DELETE("/remove/:cartId", controllers.RemoveFromCart)
		cart.DELETE("/clear", controllers.ClearCart)
		cart.GET("/count", controllers.GetCartCount)
		cart.GET("/total", controllers.GetCartTotal)
	}
}

func WishlistRoutes(server *gin.Engine) {
	wishlist := server.Group("/api/wishlist", middlewares.RequireAuth())
	{
		wishlist.GET("", controllers.GetWishlist)
		wishlist.GET("/count", controllers.GetWishlistCount)
		wishlist.POST("/:productId", controllers.AddToWishlist)
		wishlist.DELETE("/:productId", controllers.RemoveFromWishlist)
	}
}
