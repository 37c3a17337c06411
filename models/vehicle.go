package models

// VehicleFitment holds the raw per-axle fitment columns of a vehicle. Every
// value is free text as entered by the data team ("5x114.3", "60.1", "18\"")
// and any of them may be missing.
type VehicleFitment struct {
	ID        int64  `json:"id" gorm:"column:id;primaryKey"`
	VehicleID string `json:"vehicle_id" gorm:"column:vehicle_id;index"`

	BoltPatternFront *string `json:"bolt_pattern_front" gorm:"column:bolt_pattern_front"`
	BoltPatternRear  *string `json:"bolt_pattern_rear" gorm:"column:bolt_pattern_rear"`
	HubBoreFront     *string `json:"hub_bore_front" gorm:"column:hub_bore_front"`
	HubBoreRear      *string `json:"hub_bore_rear" gorm:"column:hub_bore_rear"`
	OffsetMinFront   *string `json:"offset_min_front" gorm:"column:offset_min_front"`
	OffsetMaxFront   *string `json:"offset_max_front" gorm:"column:offset_max_front"`
	OffsetMinRear    *string `json:"offset_min_rear" gorm:"column:offset_min_rear"`
	OffsetMaxRear    *string `json:"offset_max_rear" gorm:"column:offset_max_rear"`
	RimWidthFront    *string `json:"rim_width_front" gorm:"column:rim_width_front"`
	RimWidthRear     *string `json:"rim_width_rear" gorm:"column:rim_width_rear"`
	RimDiameterFront *string `json:"rim_diameter_front" gorm:"column:rim_diameter_front"`
	RimDiameterRear  *string `json:"rim_diameter_rear" gorm:"column:rim_diameter_rear"`
}

func (VehicleFitment) TableName() string {
	return "mini_vehicle_detail"
}
