package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/healthz", controllers.HealthCheck)
}

// Register mounts every route group on server.
func Register(server *gin.Engine) {
	controllers.RegisterValidators()

	DefaultRoutes(server)
	AuthRoutes(server)
	ProductRoutes(server)
	CartRoutes(server)
	WishlistRoutes(server)
	OrderRoutes(server)
	BannerRoutes(server)
	AdminRoutes(server)
}
