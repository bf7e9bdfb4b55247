package routes

import (
	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PageRoutes(api *gin.RouterGroup) {
	pages := api.Group("/pages")
	pages.GET("", controllers.GetPages)
	pages.GET("/:slug", controllers.GetPage)

	authed := pages.Group("", middlewares.RequireAuth())
	authed.POST("", controllers.CreatePage)
	authed.POST("/:slug", controllers.SavePage)
	authed.PATCH("/:slug", controllers.RenamePage)
	authed.GET("/:slug/preview", controllers.PreviewPage)
	authed.POST("/:slug/publish", controllers.PublishPage)
	authed.DELETE("/:slug", middlewares.RequireAdmin(), controllers.DeletePage)
}

func BuilderRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/builder/sessions", middlewares.RequireAuth())
	sessions.POST("", controllers.OpenBuilderSession)
	sessions.GET("/:id", controllers.GetBuilderSession)
	sessions.DELETE("/:id", controllers.CloseBuilderSession)
	sessions.GET("/:id/project", controllers.LoadBuilderProject)
	sessions.PUT("/:id/project", controllers.StageBuilderProject)
	sessions.POST("/:id/save", controllers.SaveBuilderSession)
	sessions.GET("/:id/preview", controllers.PreviewBuilderSession)
}
