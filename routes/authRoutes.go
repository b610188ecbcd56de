package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/signin", controllers.Signin)
	}

	authenticated := auth.Group("", middlewares.RequireAuth())
	{
		authenticated.GET("/me", controllers.GetCurrentUser)
		authenticated.POST("/signout", controllers.Signout)
		authenticated.POST("/promote-to-admin", controllers.PromoteToAdmin)
		authenticated.POST("/admin/signup", middlewares.RequireAdmin(), controllers.AdminSignup)
	}
}
