package routes

import (
	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup) {
	api.POST("/login", controllers.Login)
	api.POST("/logout", controllers.Logout)
	api.GET("/me", middlewares.RequireAuth(), controllers.Me)
}
