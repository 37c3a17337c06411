package public_cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	BrandsNamespace = "brands"
	// L1TTL bounds how long an instance serves brands after another instance
	// bumped the version.
	L1TTL = time.Minute
	// LoadTimeout caps a shared refill, which outlives the caller that started it.
	LoadTimeout = 5 * time.Second
)

// ── Brand list cache ─────────────────────────────────────────────────────────
// L1 in-process entry, then Redis, then the database. Concurrent misses share
// a single load, detached from any one caller's cancellation.

type brandEntry struct {
	data      *models.BrandsListResponse
	fetchedAt time.Time
}

type BrandCache struct {
	store *Store
	repo  repository.BrandRepository
	ttl   time.Duration
	log   zerolog.Logger

	mu    sync.RWMutex
	entry *brandEntry
	gen   uint64 // bumped by Invalidate; a load started earlier must not fill L1
	group singleflight.Group
}

func NewBrandCache(store *Store, repo repository.BrandRepository, ttl time.Duration, log zerolog.Logger) *BrandCache {
	return &BrandCache{store: store, repo: repo, ttl: ttl, log: log}
}

func (c *BrandCache) Get(ctx context.Context) (*models.BrandsListResponse, error) {
	if data, ok := c.getL1(); ok {
		return data, nil
	}

	ch := c.group.DoChan(BrandsNamespace, func() (any, error) {
		if data, ok := c.getL1(); ok {
			return data, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return c.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.BrandsListResponse), nil
	}
}

func (c *BrandCache) getL1() (*models.BrandsListResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry != nil && time.Since(c.entry.fetchedAt) < L1TTL {
		return c.entry.data, true
	}
	return nil, false
}

func (c *BrandCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// setL1 stores data unless Invalidate ran since gen was read.
func (c *BrandCache) setL1(data *models.BrandsListResponse, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.entry = &brandEntry{data: data, fetchedAt: time.Now()}
}

func (c *BrandCache) load(ctx context.Context) (*models.BrandsListResponse, error) {
	gen := c.generation()
	version, err := c.store.Version(ctx, BrandsNamespace)
	if err != nil {
		c.log.Warn().Err(err).Msg("brand cache version unavailable")
	}
	key := Key(BrandsNamespace, version, "list")

	if raw, err := c.store.Get(ctx, key); err == nil {
		var cached models.BrandsListResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.setL1(&cached, gen)
			return &cached, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding malformed brand cache entry")
	}

	brands, err := c.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	data := BrandsResponse(brands)

	if raw, err := json.Marshal(data); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("brand cache refill failed")
		}
	}
	c.setL1(data, gen)
	return data, nil
}

// Invalidate drops the local entry and bumps the shared version. Callers
// arriving later start a fresh load instead of joining one already in flight.
func (c *BrandCache) Invalidate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	c.entry = nil
	c.gen++
	c.mu.Unlock()
	c.group.Forget(BrandsNamespace)

	return c.store.BumpVersion(ctx, BrandsNamespace)
}

func BrandsResponse(brands []models.WheelBrand) *models.BrandsListResponse {
	out := &models.BrandsListResponse{Brands: make([]models.BrandResponse, 0, len(brands))}
	for _, b := range brands {
		out.Brands = append(out.Brands, models.BrandResponse{
			ID:          b.ID,
			Name:        b.Name,
			Slug:        b.Slug,
			Logo:        b.Logo,
			Description: b.Description,
			Status:      b.Status,
			Weigh:       b.Weigh,
		})
	}
	out.Total = len(out.Brands)
	return out
}
