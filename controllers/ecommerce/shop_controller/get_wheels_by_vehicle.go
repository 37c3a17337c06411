package shop_controller

import (
	"github.com/Mininormi/mininormi1210/utils"
	"github.com/gin-gonic/gin"
)

// GetWheelsByVehicle godoc
// @Summary List wheels that fit a vehicle
// @Description Match wheel variants against the vehicle's bolt pattern, hub bore, offset and width, with facets for diameter, width and offset.
// @Tags Shop - Wheels
// @Produce json
// @Param vehicle_id query string true "Vehicle ID"
// @Param axle query string false "front | rear | both" default(both)
// @Param diameter query int false "Rim diameter in inches (10-30)"
// @Param brand_id query int false "Brand ID"
// @Param min_price query number false "Minimum sale price"
// @Param max_price query number false "Maximum sale price"
// @Param min_width query number false "Minimum rim width (inches)"
// @Param max_width query number false "Maximum rim width (inches)"
// @Param min_offset query int false "Minimum offset (mm)"
// @Param max_offset query int false "Maximum offset (mm)"
// @Param tpms_compatible query bool false "TPMS compatible variants only"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (1-100)" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /shop/wheels/by-vehicle [get]
func GetWheelsByVehicle(c *gin.Context) {
	var req WheelsByVehicleRequest
	if !bindQuery(c, &req) {
		return
	}

	q := req.query()
	res, err := resolver.Resolve(c.Request.Context(), q)
	if err != nil {
		respondResolveError(c, err)
		return
	}

	if tracker.Enabled() {
		tracker.Track(utils.NewSearchEvent(c, q.VehicleID, "", string(q.Axle), res.Total))
	}

	respondWheels(c, res)
}
