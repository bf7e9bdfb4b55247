package routes

import (
	"time"

	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with every route mounted.
func NewRouter() *gin.Engine {
	server := gin.New()
	server.Use(middlewares.RequestLogger(), gin.Recovery())
	if len(initializers.Config.CORSOrigins) > 0 {
		server.Use(cors.New(cors.Config{
			AllowOrigins:     initializers.Config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	DefaultRoutes(server)

	api := server.Group("/api")
	AuthRoutes(api)
	ProductRoutes(api)
	ContentRoutes(api)
	SiteRoutes(api)
	PageRoutes(api)
	BuilderRoutes(api)

	return server
}
