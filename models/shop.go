// ════════════════════════════════════════════════════════════
// SHOP RESPONSE MODELS
// Field names follow the storefront client (snake_case).
// ════════════════════════════════════════════════════════════

package models

// WheelVariantResponse is a variant that matched the request.
type WheelVariantResponse struct {
	VariantID     int64    `json:"variant_id"`
	Size          string   `json:"size"`
	Diameter      *int     `json:"diameter"`
	Width         *float64 `json:"width"`
	BoltPattern   string   `json:"bolt_pattern"`
	Offset        *int     `json:"offset"`
	HubBore       *float64 `json:"hub_bore"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Stock         int      `json:"stock"`
}

// WheelProductResponse carries display prices derived from its matching variants.
type WheelProductResponse struct {
	ProductID     int64                  `json:"product_id"`
	Name          string                 `json:"name"`
	BrandID       *int64                 `json:"brand_id"`
	Image         *string                `json:"image"`
	SalePrice     *float64               `json:"sale_price"`
	OriginalPrice *float64               `json:"original_price"`
	Stock         int                    `json:"stock"`
	Status        string                 `json:"status"`
	Variants      []WheelVariantResponse `json:"variants"`
}

// WidthFacetItem counts distinct products offering a rim width (inches).
type WidthFacetItem struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// OffsetBucketItem counts distinct products with an offset inside [Min, Max] mm.
type OffsetBucketItem struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type WheelsListResponse struct {
	Items                  []WheelProductResponse `json:"items"`
	Total                  int                    `json:"total"`
	Page                   int                    `json:"page"`
	PageSize               int                    `json:"page_size"`
	OEMDiameterFront       *int                   `json:"oem_diameter_front,omitempty"`
	OEMDiameterRear        *int                   `json:"oem_diameter_rear,omitempty"`
	AvailableDiameters     []int                  `json:"available_diameters"`
	AvailableWidths        []WidthFacetItem       `json:"available_widths"`
	AvailableOffsetBuckets []OffsetBucketItem     `json:"available_offset_buckets"`
}

// NewWheelsListResponse returns an empty page with non-nil slices so clients
// always receive [] rather than null.
func NewWheelsListResponse(page, pageSize int) *WheelsListResponse {
	return &WheelsListResponse{
		Items:                  []WheelProductResponse{},
		Page:                   page,
		PageSize:               pageSize,
		AvailableDiameters:     []int{},
		AvailableWidths:        []WidthFacetItem{},
		AvailableOffsetBuckets: []OffsetBucketItem{},
	}
}

// AxleFitment is one axle's normalized fitment.
type AxleFitment struct {
	BoltPattern *string  `json:"bolt_pattern"`
	HubBore     *float64 `json:"hub_bore"`
	OffsetMin   *int     `json:"offset_min"`
	OffsetMax   *int     `json:"offset_max"`
	Width       *float64 `json:"width"`
	Diameter    *int     `json:"diameter"`
}

// EffectiveFitment is what the resolver actually matches against.
type EffectiveFitment struct {
	BoltPatterns []string `json:"bolt_patterns"`
	HubBoreMin   *float64 `json:"hub_bore_min"`
	OffsetMin    *int     `json:"offset_min"`
	OffsetMax    *int     `json:"offset_max"`
	WidthMin     *float64 `json:"width_min"`
	WidthMax     *float64 `json:"width_max"`
}

type FitmentSummary struct {
	VehicleID string           `json:"vehicle_id"`
	Axle      string           `json:"axle"`
	Front     AxleFitment      `json:"front"`
	Rear      AxleFitment      `json:"rear"`
	Effective EffectiveFitment `json:"effective"`
}

type BrandResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        *string `json:"slug"`
	Logo        *string `json:"logo"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Weigh       int     `json:"weigh"`
}

type BrandsListResponse struct {
	Brands []BrandResponse `json:"brands"`
	Total  int             `json:"total"`
}
