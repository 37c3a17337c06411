package ecommerce_routes

import (
	"github.com/Mininormi/mininormi1210/controllers/ecommerce/shop_controller"
	"github.com/gin-gonic/gin"
)

// SetupShopRoutes registers the public storefront endpoints. limiter may be nil.
func SetupShopRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	shop := router.Group("/shop")
	if limiter != nil {
		shop.Use(limiter)
	}

	// Wheel routes
	wheels := shop.Group("/wheels")
	{
		wheels.GET("", shop_controller.GetWheels)                     // By bolt pattern
		wheels.GET("/by-vehicle", shop_controller.GetWheelsByVehicle) // By vehicle fitment
	}

	shop.GET("/vehicles/:id/fitment", shop_controller.GetVehicleFitment)
	shop.GET("/brands", shop_controller.GetBrands)
}
