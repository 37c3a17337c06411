package cms_routes

import (
	"github.com/Mininormi/mininormi1210/controllers/cms/cache_controller"
	"github.com/Mininormi/mininormi1210/middleware"
	"github.com/Mininormi/mininormi1210/services"
	"github.com/gin-gonic/gin"
)

func SetupCacheRoutes(rg *gin.RouterGroup, jwtService *services.JWTService) {
	cache := rg.Group("/cache")

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Admin Auth)
	// ════════════════════════════════════════════════════════════
	cache.Use(middleware.AdminAuthMiddleware(jwtService))
	{
		cache.POST("/brands/invalidate", cache_controller.InvalidateBrandCache)
	}
}
