package shop_controller

import (
	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/Mininormi/mininormi1210/utils"
	"github.com/gin-gonic/gin"
)

// GetWheels godoc
// @Summary List wheels by bolt pattern, legacy vehicle id, or the whole catalog
// @Description With pcd, matches that bolt pattern only; an unparseable PCD returns an empty page. Without pcd, a vehicle_id resolves the vehicle's front axle as by-vehicle does. With neither, every normal product is listed. Filters and facets work the same in all three.
// @Tags Shop - Wheels
// @Produce json
// @Param pcd query string false "Bolt pattern, e.g. 5x114.3"
// @Param vehicle_id query string false "Vehicle ID (legacy, prefer /shop/wheels/by-vehicle)"
// @Param diameter query int false "Rim diameter in inches (10-30)"
// @Param brand_id query int false "Brand ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (1-100)" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /shop/wheels [get]
func GetWheels(c *gin.Context) {
	var req WheelsRequest
	if !bindQuery(c, &req) {
		return
	}

	var (
		res *models.WheelsListResponse
		err error
	)
	ctx := c.Request.Context()
	switch {
	case req.PCD != "":
		res, err = resolver.ResolveByBoltPattern(ctx, req.PCD, req.query())
	case req.VehicleID != "":
		res, err = resolver.Resolve(ctx, req.query())
	default:
		res, err = resolver.ListCatalog(ctx, req.query())
	}
	if err != nil {
		respondResolveError(c, err)
		return
	}

	if tracker.Enabled() {
		tracker.Track(utils.NewSearchEvent(c, req.VehicleID, req.PCD, string(fitment.AxleFront), res.Total))
	}

	respondWheels(c, res)
}
