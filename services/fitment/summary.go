package fitment

import (
	"github.com/Mininormi/mininormi1210/models"
	"github.com/shopspring/decimal"
)

// Summarize renders a vehicle's normalized axles and effective constraints for
// the storefront's fitment panel.
func Summarize(nf NormalizedFitment, eff Effective, axle Axle) models.FitmentSummary {
	s := models.FitmentSummary{
		VehicleID: nf.VehicleID,
		Axle:      string(axle),
		Front:     axleFitment(nf.Front),
		Rear:      axleFitment(nf.Rear),
		Effective: models.EffectiveFitment{BoltPatterns: make([]string, 0, len(eff.BoltPatterns))},
	}
	for _, bp := range eff.BoltPatterns {
		s.Effective.BoltPatterns = append(s.Effective.BoltPatterns, bp.String())
	}
	s.Effective.HubBoreMin = decimalFloat(eff.HubBoreMin)
	if eff.Offset != nil {
		s.Effective.OffsetMin = &eff.Offset.Min
		s.Effective.OffsetMax = &eff.Offset.Max
	}
	if eff.Width != nil {
		s.Effective.WidthMin = decimalFloat(&eff.Width.Min)
		s.Effective.WidthMax = decimalFloat(&eff.Width.Max)
	}
	return s
}

func axleFitment(a AxleSpec) models.AxleFitment {
	out := models.AxleFitment{
		HubBore:   decimalFloat(a.HubBore),
		OffsetMin: a.OffsetMin,
		OffsetMax: a.OffsetMax,
		Width:     decimalFloat(a.Width),
		Diameter:  a.Diameter,
	}
	if a.BoltPattern != nil {
		s := a.BoltPattern.String()
		out.BoltPattern = &s
	}
	return out
}

func decimalFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
