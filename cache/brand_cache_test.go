package public_cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBrands struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (r *countingBrands) ListActive(ctx context.Context) ([]models.WheelBrand, error) {
	r.calls.Add(1)
	time.Sleep(r.delay)
	if r.err != nil {
		return nil, r.err
	}
	return []models.WheelBrand{
		{ID: 2, Name: "BBS", Status: models.StatusNormal, Weigh: 5},
		{ID: 1, Name: "Enkei", Status: models.StatusNormal, Weigh: 1},
	}, nil
}

// gatedBrands blocks ListActive until release is closed and honours ctx.
type gatedBrands struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newGatedBrands() *gatedBrands {
	return &gatedBrands{started: make(chan struct{}, 8), release: make(chan struct{})}
}

func (r *gatedBrands) ListActive(ctx context.Context) ([]models.WheelBrand, error) {
	n := r.calls.Add(1)
	r.started <- struct{}{}
	if n == 1 {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []models.WheelBrand{{ID: int64(n), Name: "BBS", Status: models.StatusNormal}}, nil
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "publiccache:brands:ver", VersionKey(BrandsNamespace))
	assert.Equal(t, "publiccache:brands:v3:list", Key(BrandsNamespace, 3, "list"))
}

func TestStoreWithoutRedisIsEmpty(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	v, err := s.Version(ctx, BrandsNamespace)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestBrandCacheServesFromL1(t *testing.T) {
	repo := &countingBrands{}
	c := NewBrandCache(NewStore(nil), repo, time.Hour, zerolog.Nop())

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, "BBS", first.Brands[0].Name)

	second, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestBrandCacheCollapsesConcurrentMisses(t *testing.T) {
	repo := &countingBrands{delay: 50 * time.Millisecond}
	c := NewBrandCache(NewStore(nil), repo, time.Hour, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestBrandCacheInvalidate(t *testing.T) {
	repo := &countingBrands{}
	c := NewBrandCache(NewStore(nil), repo, time.Hour, zerolog.Nop())

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	_, err = c.Invalidate(context.Background())
	require.NoError(t, err)
	_, err = c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestBrandCacheDatabaseError(t *testing.T) {
	boom := errors.New("db down")
	c := NewBrandCache(NewStore(nil), &countingBrands{err: boom}, time.Hour, zerolog.Nop())

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestBrandCacheLoadSurvivesCallerCancel(t *testing.T) {
	repo := newGatedBrands()
	c := NewBrandCache(NewStore(nil), repo, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx)
		errc <- err
	}()

	<-repo.started
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(repo.release)
	data, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Brands[0].ID)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestBrandCacheInvalidateDuringLoad(t *testing.T) {
	repo := newGatedBrands()
	c := NewBrandCache(NewStore(nil), repo, time.Hour, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := c.Get(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), data.Brands[0].ID)
	}()

	<-repo.started
	_, err := c.Invalidate(context.Background())
	require.NoError(t, err)
	close(repo.release)
	<-done

	data, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Brands[0].ID, "the load that raced Invalidate is not cached")
	assert.Equal(t, int32(2), repo.calls.Load())
}
