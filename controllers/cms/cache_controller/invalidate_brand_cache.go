package cache_controller

import (
	"net/http"

	public_cache "github.com/Mininormi/mininormi1210/cache"
	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/models"
	"github.com/gin-gonic/gin"
)

var brandCache *public_cache.BrandCache

func InitCacheController(bc *public_cache.BrandCache) {
	brandCache = bc
}

type InvalidateResponse struct {
	Namespace string `json:"namespace"`
	Version   int64  `json:"version"`
}

// InvalidateBrandCache godoc
// @Summary Invalidate the public brand cache
// @Description Bumps the brands cache version so every instance reloads from the database.
// @Tags Admin - Cache
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /admin/cache/brands/invalidate [post]
func InvalidateBrandCache(c *gin.Context) {
	version, err := brandCache.Invalidate(c.Request.Context())
	if err != nil {
		config.Log.Error().Err(err).Msg("❌ Failed to bump brand cache version")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Cache temporarily unavailable"))
		return
	}

	config.Log.Info().
		Str("admin_email", c.GetString("adminEmail")).
		Int64("version", version).
		Msg("✅ Brand cache invalidated")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brand cache invalidated", InvalidateResponse{
		Namespace: public_cache.BrandsNamespace,
		Version:   version,
	}))
}
