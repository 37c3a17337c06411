package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogPath = "testdata/catalog.yaml"

func TestCatalogFileDataset(t *testing.T) {
	cf, err := LoadCatalogFile(catalogPath)
	require.NoError(t, err)

	now := time.Unix(1760000000, 0)
	ds, err := cf.Dataset(now)
	require.NoError(t, err)

	require.Len(t, ds.Brands, 2)
	require.Len(t, ds.Products, 2)
	require.Len(t, ds.Variants, 3)
	require.Len(t, ds.Vehicles, 2)

	v := ds.Variants[0]
	assert.Equal(t, int64(100), v.ProductID)
	assert.Equal(t, models.StatusNormal, v.Status)
	require.NotNil(t, v.PcdLugs)
	assert.Equal(t, 5, *v.PcdLugs)
	assert.Equal(t, "114.3", v.PcdMM.Decimal.String())
	assert.Equal(t, "289", v.SalePrice.Decimal.String())
	assert.Equal(t, "5x114.3", v.BoltPatternText())
	assert.Equal(t, now.Unix(), v.CreateTime)

	assert.True(t, ds.Products[0].HubRingIncluded)
	assert.Equal(t, `18"`, *ds.Vehicles[0].RimDiameterFront)
	assert.Equal(t, "64.1", *ds.Vehicles[0].HubBoreFront)
	assert.Nil(t, ds.Vehicles[1].OffsetMinFront)
}

func TestCatalogFileRejectsBadValues(t *testing.T) {
	for name, variant := range map[string]VariantFixture{
		"pcd":   {ID: 1, PCD: "five by 114"},
		"width": {ID: 1, Width: "8,5"},
		"price": {ID: 1, SalePrice: "free"},
	} {
		cf := &CatalogFile{Products: []ProductFixture{{ID: 9, Variants: []VariantFixture{variant}}}}
		_, err := cf.Dataset(time.Now())
		assert.Error(t, err, name)
	}
}

func TestLoadCatalogFileErrors(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("products: {"), 0o600))
	_, err = LoadCatalogFile(bad)
	assert.Error(t, err)
}

func TestRunResolveVehicle(t *testing.T) {
	var out bytes.Buffer
	err := runResolve(context.Background(), resolveOptions{
		file:      catalogPath,
		vehicleID: "civic-2019",
		axle:      "front",
		page:      1,
		pageSize:  20,
	}, &out)
	require.NoError(t, err)

	var res models.WheelsListResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(100), res.Items[0].ProductID)
	assert.Equal(t, []int{17, 18}, res.AvailableDiameters)
	assert.Equal(t, 18, *res.OEMDiameterFront)
}

func TestRunResolveBoltPattern(t *testing.T) {
	var out bytes.Buffer
	err := runResolve(context.Background(), resolveOptions{
		file:     catalogPath,
		pcd:      "5x112",
		axle:     "both",
		page:     1,
		pageSize: 20,
	}, &out)
	require.NoError(t, err)

	var res models.WheelsListResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(200), res.Items[0].ProductID)
}

func TestRunResolveArguments(t *testing.T) {
	var out bytes.Buffer
	base := resolveOptions{file: catalogPath, axle: "both", page: 1, pageSize: 20}

	noTarget := base
	assert.Error(t, runResolve(context.Background(), noTarget, &out))

	badAxle := base
	badAxle.vehicleID, badAxle.axle = "civic-2019", "left"
	assert.Error(t, runResolve(context.Background(), badAxle, &out))

	badPage := base
	badPage.vehicleID, badPage.pageSize = "civic-2019", 500
	assert.Error(t, runResolve(context.Background(), badPage, &out))

	unknown := base
	unknown.vehicleID = "delorean"
	assert.Error(t, runResolve(context.Background(), unknown, &out))
}
