package routes

import (
	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/gin-gonic/gin"
)

// resourceRoutes mounts the uniform CRUD surface. Reads are public, writes
// need a session and deletes need an admin.
func resourceRoutes[T any](api *gin.RouterGroup, path string, r controllers.Resource[T]) *gin.RouterGroup {
	group := api.Group(path)
	group.GET("", r.List)
	group.GET("/:id", r.Get)
	group.POST("", middlewares.RequireAuth(), r.Create)
	group.PUT("/:id", middlewares.RequireAuth(), r.Replace)
	group.PATCH("/:id", middlewares.RequireAuth(), r.Patch)
	group.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), r.Delete)
	return group
}

func ContentRoutes(api *gin.RouterGroup) {
	resourceRoutes(api, "/blogs", controllers.Blogs)
	resourceRoutes(api, "/gallery", controllers.Gallery)
	resourceRoutes(api, "/portfolio", controllers.Portfolio)
	resourceRoutes(api, "/customers", controllers.Customers)
	resourceRoutes(api, "/contact-info", controllers.ContactInfo)
	resourceRoutes(api, "/about-stats", controllers.AboutStats)
}

// submissionRoutes mounts a resource the public site writes to. Reading
// submissions needs a session.
func submissionRoutes[T any](api *gin.RouterGroup, path string, r controllers.Resource[T]) *gin.RouterGroup {
	group := api.Group(path)
	group.POST("", r.Create)
	group.GET("", middlewares.RequireAuth(), r.List)
	group.GET("/:id", middlewares.RequireAuth(), r.Get)
	group.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), r.Delete)
	return group
}

func SiteRoutes(api *gin.RouterGroup) {
	submissionRoutes(api, "/inquiries", controllers.Inquiries)

	analytics := submissionRoutes(api, "/analytics", controllers.AnalyticsEvents)
	analytics.GET("/summary", middlewares.RequireAuth(), controllers.GetAnalyticsSummary)
}
