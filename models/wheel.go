// ════════════════════════════════════════════════════════════
// WHEEL CATALOG MODELS
// Tables are owned by the FastAdmin back office; this service only reads them.
// ════════════════════════════════════════════════════════════

package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Lifecycle values shared by products, variants and brands.
const (
	StatusNormal  = "normal"
	StatusHidden  = "hidden"
	StatusSoldOut = "soldout"
	StatusDeleted = "deleted"
)

// WheelProduct is a wheel model line; pricing lives on its variants.
type WheelProduct struct {
	ID                int64   `json:"id" gorm:"column:id;primaryKey"`
	BrandID           *int64  `json:"brand_id" gorm:"column:brand_id;index"`
	Name              string  `json:"name" gorm:"column:name"`
	Slug              string  `json:"slug" gorm:"column:slug"`
	Image             *string `json:"image" gorm:"column:image"`
	CenterCapIncluded bool    `json:"center_cap_included" gorm:"column:center_cap_included"`
	HubRingIncluded   bool    `json:"hub_ring_included" gorm:"column:hub_ring_included"`
	WinterApproved    bool    `json:"winter_approved" gorm:"column:winterapprovedswitch"`
	Status            string  `json:"status" gorm:"column:status;index"`
	Weigh             int     `json:"weigh" gorm:"column:weigh"`
	CreateTime        int64   `json:"createtime" gorm:"column:createtime"`
	UpdateTime        int64   `json:"updatetime" gorm:"column:updatetime"`
}

func (WheelProduct) TableName() string {
	return "mini_wheel_product"
}

// WheelVariant is one purchasable size of a WheelProduct (a "spec" row).
type WheelVariant struct {
	ID             int64               `json:"id" gorm:"column:id;primaryKey"`
	ProductID      int64               `json:"product_id" gorm:"column:product_id;index"`
	Size           string              `json:"size" gorm:"column:size"`
	Pcd            string              `json:"pcd" gorm:"column:pcd"`
	PcdLugs        *int                `json:"pcd_lugs" gorm:"column:pcd_lugs"`
	PcdMM          decimal.NullDecimal `json:"pcd_mm" gorm:"column:pcd_mm;type:decimal(6,3)"`
	CenterBore     decimal.NullDecimal `json:"center_bore" gorm:"column:center_bore;type:decimal(5,1)"`
	Offset         *int                `json:"offset" gorm:"column:offset"`
	Width          decimal.NullDecimal `json:"width" gorm:"column:width;type:decimal(4,1)"`
	Diameter       *int                `json:"diameter" gorm:"column:diameter"`
	TPMSCompatible bool                `json:"tpms_compatible" gorm:"column:tpmscompatibleswitch"`
	SalePrice      decimal.NullDecimal `json:"sale_price" gorm:"column:sale_price;type:decimal(10,2)"`
	OriginalPrice  decimal.NullDecimal `json:"original_price" gorm:"column:original_price;type:decimal(10,2)"`
	Stock          int                 `json:"stock" gorm:"column:stock"`
	Status         string              `json:"status" gorm:"column:status;index"`
	Weigh          int                 `json:"weigh" gorm:"column:weigh"`
	CreateTime     int64               `json:"createtime" gorm:"column:createtime"`
	UpdateTime     int64               `json:"updatetime" gorm:"column:updatetime"`
}

func (WheelVariant) TableName() string {
	return "mini_wheel_product_spec"
}

// BoltPatternText returns the stored display text, or "<lugs>x<mm>" when only
// the numeric columns are filled in.
func (v WheelVariant) BoltPatternText() string {
	if v.Pcd != "" {
		return v.Pcd
	}
	if v.PcdLugs != nil && v.PcdMM.Valid {
		return fmt.Sprintf("%dx%s", *v.PcdLugs, v.PcdMM.Decimal.String())
	}
	return ""
}

// WheelBrand is a wheel manufacturer shown in the Featured Brands strip.
type WheelBrand struct {
	ID          int64   `json:"id" gorm:"column:id;primaryKey"`
	Name        string  `json:"name" gorm:"column:name"`
	Slug        *string `json:"slug" gorm:"column:slug"`
	Logo        *string `json:"logo" gorm:"column:logo"`
	Description *string `json:"description" gorm:"column:description"`
	Status      string  `json:"status" gorm:"column:status"`
	Weigh       int     `json:"weigh" gorm:"column:weigh"`
	CreateTime  int64   `json:"createtime" gorm:"column:createtime"`
}

func (WheelBrand) TableName() string {
	return "mini_wheel_brand"
}
