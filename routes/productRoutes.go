package routes

import (
	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	products.GET("", controllers.GetProducts)
	products.GET("/:id", controllers.GetProduct)
	products.POST("", middlewares.RequireAuth(), controllers.Products.Create)
	products.PUT("/:id", middlewares.RequireAuth(), controllers.Products.Replace)
	products.PATCH("/:id", middlewares.RequireAuth(), controllers.Products.Patch)
	products.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.Products.Delete)

	resourceRoutes(api, "/brands", controllers.Brands)

	subProducts := resourceRoutes(api, "/sub-products", controllers.SubProducts)
	subProducts.GET("/:id/link-status", middlewares.RequireAuth(), controllers.CheckSubProductLink)
}
