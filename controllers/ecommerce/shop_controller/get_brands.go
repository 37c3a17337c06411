package shop_controller

import (
	"net/http"

	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/models"
	"github.com/gin-gonic/gin"
)

// GetBrands godoc
// @Summary List wheel brands
// @Description Active brands ordered by weight, served from the public cache.
// @Tags Shop - Brands
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /shop/brands [get]
func GetBrands(c *gin.Context) {
	brands, err := brandCache.Get(c.Request.Context())
	if err != nil {
		config.Log.Error().Err(err).Msg("❌ Failed to load brands")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Brands temporarily unavailable"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Brands fetched successfully", brands))
}
