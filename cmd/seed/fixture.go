package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML layout accepted by seed and resolve. Decimal values
// are quoted strings so they stay exact.
type CatalogFile struct {
	Brands   []BrandFixture   `yaml:"brands"`
	Products []ProductFixture `yaml:"products"`
	Vehicles []VehicleFixture `yaml:"vehicles"`
}

type BrandFixture struct {
	ID          int64   `yaml:"id"`
	Name        string  `yaml:"name"`
	Slug        *string `yaml:"slug"`
	Logo        *string `yaml:"logo"`
	Description *string `yaml:"description"`
	Status      string  `yaml:"status"`
	Weigh       int     `yaml:"weigh"`
}

type ProductFixture struct {
	ID                int64            `yaml:"id"`
	BrandID           *int64           `yaml:"brand_id"`
	Name              string           `yaml:"name"`
	Slug              string           `yaml:"slug"`
	Image             *string          `yaml:"image"`
	CenterCapIncluded bool             `yaml:"center_cap_included"`
	HubRingIncluded   bool             `yaml:"hub_ring_included"`
	WinterApproved    bool             `yaml:"winter_approved"`
	Status            string           `yaml:"status"`
	Weigh             int              `yaml:"weigh"`
	Variants          []VariantFixture `yaml:"variants"`
}

type VariantFixture struct {
	ID             int64  `yaml:"id"`
	Size           string `yaml:"size"`
	PCD            string `yaml:"pcd"`
	CenterBore     string `yaml:"center_bore"`
	Offset         *int   `yaml:"offset"`
	Width          string `yaml:"width"`
	Diameter       *int   `yaml:"diameter"`
	TPMSCompatible bool   `yaml:"tpms_compatible"`
	SalePrice      string `yaml:"sale_price"`
	OriginalPrice  string `yaml:"original_price"`
	Stock          int    `yaml:"stock"`
	Status         string `yaml:"status"`
	Weigh          int    `yaml:"weigh"`
}

// VehicleFixture keeps the raw text columns as the data team enters them.
type VehicleFixture struct {
	VehicleID        string  `yaml:"vehicle_id"`
	BoltPatternFront *string `yaml:"bolt_pattern_front"`
	BoltPatternRear  *string `yaml:"bolt_pattern_rear"`
	HubBoreFront     *string `yaml:"hub_bore_front"`
	HubBoreRear      *string `yaml:"hub_bore_rear"`
	OffsetMinFront   *string `yaml:"offset_min_front"`
	OffsetMaxFront   *string `yaml:"offset_max_front"`
	OffsetMinRear    *string `yaml:"offset_min_rear"`
	OffsetMaxRear    *string `yaml:"offset_max_rear"`
	RimWidthFront    *string `yaml:"rim_width_front"`
	RimWidthRear     *string `yaml:"rim_width_rear"`
	RimDiameterFront *string `yaml:"rim_diameter_front"`
	RimDiameterRear  *string `yaml:"rim_diameter_rear"`
}

func LoadCatalogFile(path string) (*CatalogFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var cf CatalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return &cf, nil
}

// Dataset converts the file into catalog rows. Rows without a status are
// normal; createtime is now.
func (cf *CatalogFile) Dataset(now time.Time) (repository.Dataset, error) {
	var ds repository.Dataset
	ts := now.Unix()

	for _, b := range cf.Brands {
		ds.Brands = append(ds.Brands, models.WheelBrand{
			ID:          b.ID,
			Name:        b.Name,
			Slug:        b.Slug,
			Logo:        b.Logo,
			Description: b.Description,
			Status:      statusOrNormal(b.Status),
			Weigh:       b.Weigh,
			CreateTime:  ts,
		})
	}

	for _, p := range cf.Products {
		ds.Products = append(ds.Products, models.WheelProduct{
			ID:                p.ID,
			BrandID:           p.BrandID,
			Name:              p.Name,
			Slug:              p.Slug,
			Image:             p.Image,
			CenterCapIncluded: p.CenterCapIncluded,
			HubRingIncluded:   p.HubRingIncluded,
			WinterApproved:    p.WinterApproved,
			Status:            statusOrNormal(p.Status),
			Weigh:             p.Weigh,
			CreateTime:        ts,
			UpdateTime:        ts,
		})
		for _, v := range p.Variants {
			variant, err := v.model(p.ID, ts)
			if err != nil {
				return repository.Dataset{}, fmt.Errorf("product %d variant %d: %w", p.ID, v.ID, err)
			}
			ds.Variants = append(ds.Variants, variant)
		}
	}

	for i, v := range cf.Vehicles {
		ds.Vehicles = append(ds.Vehicles, models.VehicleFitment{
			ID:               int64(i + 1),
			VehicleID:        v.VehicleID,
			BoltPatternFront: v.BoltPatternFront,
			BoltPatternRear:  v.BoltPatternRear,
			HubBoreFront:     v.HubBoreFront,
			HubBoreRear:      v.HubBoreRear,
			OffsetMinFront:   v.OffsetMinFront,
			OffsetMaxFront:   v.OffsetMaxFront,
			OffsetMinRear:    v.OffsetMinRear,
			OffsetMaxRear:    v.OffsetMaxRear,
			RimWidthFront:    v.RimWidthFront,
			RimWidthRear:     v.RimWidthRear,
			RimDiameterFront: v.RimDiameterFront,
			RimDiameterRear:  v.RimDiameterRear,
		})
	}
	return ds, nil
}

func (v VariantFixture) model(productID, ts int64) (models.WheelVariant, error) {
	out := models.WheelVariant{
		ID:             v.ID,
		ProductID:      productID,
		Size:           v.Size,
		Pcd:            v.PCD,
		Offset:         v.Offset,
		Diameter:       v.Diameter,
		TPMSCompatible: v.TPMSCompatible,
		Stock:          v.Stock,
		Status:         statusOrNormal(v.Status),
		Weigh:          v.Weigh,
		CreateTime:     ts,
		UpdateTime:     ts,
	}

	if v.PCD != "" {
		bp, ok := fitment.ParseBoltPattern(v.PCD)
		if !ok {
			return out, fmt.Errorf("invalid pcd %q", v.PCD)
		}
		out.PcdLugs = &bp.Lugs
		out.PcdMM = decimal.NewNullDecimal(bp.PitchMM)
	}

	var err error
	for _, f := range []struct {
		name string
		in   string
		out  *decimal.NullDecimal
	}{
		{"center_bore", v.CenterBore, &out.CenterBore},
		{"width", v.Width, &out.Width},
		{"sale_price", v.SalePrice, &out.SalePrice},
		{"original_price", v.OriginalPrice, &out.OriginalPrice},
	} {
		if *f.out, err = nullDecimal(f.in); err != nil {
			return out, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return out, nil
}

func nullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func statusOrNormal(s string) string {
	if s == "" {
		return models.StatusNormal
	}
	return s
}
