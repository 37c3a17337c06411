package shop_controller

import (
	"net/http"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/gin-gonic/gin"
)

// GetVehicleFitment godoc
// @Summary Get a vehicle's normalized fitment
// @Description Per-axle fitment values and the effective constraints used for matching.
// @Tags Shop - Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param axle query string false "front | rear | both" default(both)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /shop/vehicles/{id}/fitment [get]
func GetVehicleFitment(c *gin.Context) {
	var req FitmentRequest
	if !bindQuery(c, &req) {
		return
	}
	axle, _ := fitment.ParseAxle(req.Axle)

	nf, eff, err := resolver.DescribeFitment(c.Request.Context(), c.Param("id"), axle)
	if err != nil {
		respondResolveError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vehicle fitment fetched successfully", fitment.Summarize(nf, eff, axle)))
}
