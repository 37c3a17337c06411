package shop_controller

import (
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/shopspring/decimal"
)

// WheelFilterQuery holds the filters shared by both wheel listings.
type WheelFilterQuery struct {
	Diameter          *int    `form:"diameter" binding:"omitempty,min=10,max=30"`
	BrandID           *int64  `form:"brand_id" binding:"omitempty,min=1"`
	MinPrice          *string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice          *string `form:"max_price" binding:"omitempty,numeric"`
	MinWidth          *string `form:"min_width" binding:"omitempty,numeric"`
	MaxWidth          *string `form:"max_width" binding:"omitempty,numeric"`
	MinOffset         *int    `form:"min_offset" binding:"omitempty,min=-100,max=100"`
	MaxOffset         *int    `form:"max_offset" binding:"omitempty,min=-100,max=100"`
	TPMSCompatible    *bool   `form:"tpms_compatible"`
	CenterCapIncluded *bool   `form:"center_cap_included"`
	HubRingIncluded   *bool   `form:"hub_ring_included"`
	WinterApproved    *bool   `form:"winter_approved"`
	Page              int     `form:"page,default=1" binding:"min=1"`
	PageSize          int     `form:"page_size,default=20" binding:"min=1,max=100"`
}

type WheelsByVehicleRequest struct {
	VehicleID string `form:"vehicle_id" binding:"required,max=64"`
	Axle      string `form:"axle" binding:"omitempty,axle"`
	WheelFilterQuery
}

// WheelsRequest backs the plain listing: a pcd, a legacy vehicle_id, or
// neither for the whole catalog.
type WheelsRequest struct {
	PCD       string `form:"pcd" binding:"omitempty,max=32"`
	VehicleID string `form:"vehicle_id" binding:"omitempty,max=64"`
	WheelFilterQuery
}

type FitmentRequest struct {
	Axle string `form:"axle" binding:"omitempty,axle"`
}

// filters assumes the request already passed validation, so numeric strings parse.
func (f WheelFilterQuery) filters() fitment.Filters {
	out := fitment.Filters{
		Diameter:          f.Diameter,
		BrandID:           f.BrandID,
		TPMSCompatible:    f.TPMSCompatible,
		CenterCapIncluded: f.CenterCapIncluded,
		HubRingIncluded:   f.HubRingIncluded,
		WinterApproved:    f.WinterApproved,
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		out.Price = &fitment.DecimalBounds{Min: decimalPtr(f.MinPrice), Max: decimalPtr(f.MaxPrice)}
	}
	if f.MinWidth != nil || f.MaxWidth != nil {
		out.Width = &fitment.DecimalBounds{Min: decimalPtr(f.MinWidth), Max: decimalPtr(f.MaxWidth)}
	}
	if f.MinOffset != nil || f.MaxOffset != nil {
		out.Offset = &fitment.IntBounds{Min: f.MinOffset, Max: f.MaxOffset}
	}
	return out
}

func (r WheelsByVehicleRequest) query() fitment.Query {
	axle, _ := fitment.ParseAxle(r.Axle)
	return fitment.Query{
		VehicleID: r.VehicleID,
		Axle:      axle,
		Filters:   r.filters(),
		Page:      r.Page,
		PageSize:  r.PageSize,
	}
}

func (r WheelsRequest) query() fitment.Query {
	return fitment.Query{
		VehicleID: r.VehicleID,
		Axle:      fitment.AxleFront,
		Filters:   r.filters(),
		Page:      r.Page,
		PageSize:  r.PageSize,
	}
}

func decimalPtr(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}
