package shop_controller

import (
	"errors"
	"net/http"

	public_cache "github.com/Mininormi/mininormi1210/cache"
	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/Mininormi/mininormi1210/utils"
	"github.com/gin-gonic/gin"
)

var (
	resolver   *fitment.Resolver
	brandCache *public_cache.BrandCache
	tracker    *utils.SearchTracker
)

// InitShopController wires the shop handlers. tracker may be nil.
func InitShopController(r *fitment.Resolver, brands *public_cache.BrandCache, t *utils.SearchTracker) {
	resolver = r
	brandCache = brands
	tracker = t
	RegisterValidators()
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse(c, fieldErrors(err)))
		return false
	}
	return true
}

// respondResolveError maps resolver failures to HTTP statuses.
func respondResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fitment.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vehicle not found"))
	case errors.Is(err, fitment.ErrCatalogUnavailable):
		config.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("❌ Catalog unavailable")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog temporarily unavailable"))
	default:
		config.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("❌ Fitment resolution failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to resolve wheels"))
	}
}

func respondWheels(c *gin.Context, res *models.WheelsListResponse) {
	c.JSON(http.StatusOK, models.PaginatedResponse(c,
		"Wheels fetched successfully",
		res,
		models.NewPagination(res.Page, res.PageSize, res.Total),
	))
}
