package cache_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	public_cache "github.com/Mininormi/mininormi1210/cache"
	"github.com/Mininormi/mininormi1210/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBrands struct {
	calls atomic.Int32
}

func (b *countingBrands) ListActive(context.Context) ([]models.WheelBrand, error) {
	b.calls.Add(1)
	return []models.WheelBrand{{ID: 1, Name: "Enkei", Status: models.StatusNormal}}, nil
}

func TestInvalidateBrandCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &countingBrands{}
	bc := public_cache.NewBrandCache(public_cache.NewStore(nil), repo, time.Hour, zerolog.Nop())
	InitCacheController(bc)

	_, err := bc.Get(context.Background())
	require.NoError(t, err)

	router := gin.New()
	router.POST("/admin/cache/brands/invalidate", InvalidateBrandCache)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/cache/brands/invalidate", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data InvalidateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, public_cache.BrandsNamespace, body.Data.Namespace)

	_, err = bc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.calls.Load(), "local entry dropped")
}
