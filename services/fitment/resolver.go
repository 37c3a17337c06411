// Package fitment resolves which wheel variants fit a vehicle and computes the
// storefront facets for the result.
//
// A resolution normalizes the vehicle's raw fitment text, combines the two
// axles into one set of effective constraints, builds immutable predicate trees
// from them and runs the match query and the three facet queries concurrently
// against a repository.CatalogRepository.
package fitment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout         = 10 * time.Second
	defaultAssembleWorkers = 4
)

// Query is a validated resolution request.
type Query struct {
	VehicleID string
	Axle      Axle
	Filters
	Page     int
	PageSize int
}

type Resolver struct {
	catalog         repository.CatalogRepository
	timeout         time.Duration
	widthPolicy     WidthPolicy
	assembleWorkers int
	log             zerolog.Logger
}

type Option func(*Resolver)

// WithTimeout bounds a whole resolution. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithWidthPolicy(p WidthPolicy) Option {
	return func(r *Resolver) {
		if p == WidthPolicyIntersect {
			r.widthPolicy = p
		}
	}
}

// WithAssembleWorkers caps concurrent per-product variant fetches.
func WithAssembleWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.assembleWorkers = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

func NewResolver(catalog repository.CatalogRepository, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:         catalog,
		timeout:         DefaultTimeout,
		widthPolicy:     WidthPolicyFront,
		assembleWorkers: defaultAssembleWorkers,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the page of wheels fitting q.VehicleID and the facets of
// the whole match set.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*models.WheelsListResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.resolveVehicle(ctx, q)
	r.observe(modeVehicle, start, res, err)
	if err != nil {
		r.log.Warn().Err(err).Str("vehicle_id", q.VehicleID).Str("axle", string(q.Axle)).Msg("fitment resolve failed")
	}
	return res, err
}

func (r *Resolver) resolveVehicle(ctx context.Context, q Query) (*models.WheelsListResponse, error) {
	nf, err := r.loadFitment(ctx, q.VehicleID)
	if err != nil {
		return nil, err
	}

	resp := models.NewWheelsListResponse(q.Page, q.PageSize)
	resp.OEMDiameterFront = nf.Front.Diameter
	resp.OEMDiameterRear = nf.Rear.Diameter

	eff := ResolveEffective(nf, q.Axle, r.widthPolicy)
	if err := r.run(ctx, eff, q, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResolveByBoltPattern runs the same pipeline for a bare "5x114.3" pattern with
// no vehicle. An unparseable pattern gives an empty page.
func (r *Resolver) ResolveByBoltPattern(ctx context.Context, pattern string, q Query) (*models.WheelsListResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp := models.NewWheelsListResponse(q.Page, q.PageSize)
	var eff Effective
	if bp, ok := ParseBoltPattern(pattern); ok {
		eff.BoltPatterns = []BoltPattern{bp}
	}

	err := r.run(ctx, eff, q, resp)
	if err != nil {
		resp = nil
	}
	r.observe(modeBoltPattern, start, resp, err)
	return resp, err
}

// ListCatalog runs the pipeline over every normal product with no fitment
// constraint, for browsing without a vehicle or pattern.
func (r *Resolver) ListCatalog(ctx context.Context, q Query) (*models.WheelsListResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp := models.NewWheelsListResponse(q.Page, q.PageSize)
	err := r.run(ctx, Effective{AnyPattern: true}, q, resp)
	if err != nil {
		resp = nil
	}
	r.observe(modeCatalog, start, resp, err)
	return resp, err
}

// DescribeFitment returns the normalized axles of a vehicle and what the
// resolver would match for the selector.
func (r *Resolver) DescribeFitment(ctx context.Context, vehicleID string, axle Axle) (NormalizedFitment, Effective, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	nf, err := r.loadFitment(ctx, vehicleID)
	if err != nil {
		return NormalizedFitment{}, Effective{}, err
	}
	return nf, ResolveEffective(nf, axle, r.widthPolicy), nil
}

func (r *Resolver) loadFitment(ctx context.Context, vehicleID string) (NormalizedFitment, error) {
	raw, err := r.catalog.FindVehicleFitment(ctx, vehicleID)
	if errors.Is(err, repository.ErrVehicleNotFound) {
		return NormalizedFitment{}, fmt.Errorf("%w: %s", ErrVehicleNotFound, vehicleID)
	}
	if err != nil {
		return NormalizedFitment{}, unavailable(err)
	}
	return NormalizeFitment(raw), nil
}

// run fills resp for the effective constraints. Nothing is queried without a
// bolt pattern unless eff.AnyPattern is set, and the facets are skipped when
// the base predicates match nothing.
func (r *Resolver) run(ctx context.Context, eff Effective, q Query, resp *models.WheelsListResponse) error {
	if len(eff.BoltPatterns) == 0 && !eff.AnyPattern {
		return nil
	}

	ps := BuildPredicates(eff, q.Filters)

	baseIDs, err := r.catalog.MatchingProductIDs(ctx, ps.Base(), ps.Product())
	if err != nil {
		return unavailable(err)
	}
	if len(baseIDs) == 0 {
		return nil
	}

	var matchIDs []int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := r.matchProducts(gctx, ps)
		matchIDs = ids
		return err
	})
	g.Go(func() error {
		v, err := r.diameterFacet(gctx, ps)
		resp.AvailableDiameters = v
		return err
	})
	g.Go(func() error {
		v, err := r.widthFacet(gctx, ps)
		resp.AvailableWidths = v
		return err
	})
	g.Go(func() error {
		v, err := r.offsetFacet(gctx, ps)
		resp.AvailableOffsetBuckets = v
		return err
	})
	if err := g.Wait(); err != nil {
		return unavailable(err)
	}

	items, err := r.assemble(ctx, ps, pageOf(matchIDs, q.Page, q.PageSize))
	if err != nil {
		return unavailable(err)
	}
	resp.Total = len(matchIDs)
	resp.Items = items
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

func (r *Resolver) observe(mode string, start time.Time, resp *models.WheelsListResponse, err error) {
	resolveDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	outcome := outcomeOK
	switch {
	case errors.Is(err, ErrVehicleNotFound):
		outcome = outcomeNotFound
	case err != nil:
		outcome = outcomeError
	case resp.Total == 0:
		outcome = outcomeEmpty
	}
	resolveTotal.WithLabelValues(mode, outcome).Inc()
}
