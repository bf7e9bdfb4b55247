package routes

import (
	"github.com/fireguard/cms-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/p/:slug", controllers.RenderPublicPage)
}
