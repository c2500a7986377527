package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pricescout/backend/internal/domain"
)

var cacheKeyCleanRegex = regexp.MustCompile(`[^a-z0-9.-]`)

// AggregatorConfig holds configuration for the aggregator service
type AggregatorConfig struct {
	// CacheTTL bounds how long a merged result is reused. Zero selects the default.
	CacheTTL time.Duration

	// FanOutLimit caps how many adapters run at once. Zero or negative means
	// all registered adapters are dispatched together.
	FanOutLimit int
}

// AggregatorService fans a product search out to every registered source
// adapter, isolates per-source failures, and reconciles the fragments into a
// single AggregateResult.
//
// The adapters slice is the load-bearing priority order (both conflict
// resolution rules in Reconcile depend on it); callers must pass it explicitly
// and never reorder it after construction.
type AggregatorService struct {
	adapters    []domain.SourceAdapter
	cache       domain.CacheRepository
	validator   *IdentifierValidator
	cacheTTL    time.Duration
	fanOutLimit int
	logger      *zap.Logger
}

// NewAggregatorService creates an aggregator over the given ordered adapters.
func NewAggregatorService(
	adapters []domain.SourceAdapter,
	cache domain.CacheRepository,
	validator *IdentifierValidator,
	cfg AggregatorConfig,
	logger *zap.Logger,
) *AggregatorService {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AggregatorService{
		adapters:    adapters,
		cache:       cache,
		validator:   validator,
		cacheTTL:    cacheTTL,
		fanOutLimit: cfg.FanOutLimit,
		logger:      logger,
	}
}

// Aggregate runs one search. The returned result is always structurally
// complete; the error is non-nil only for the identifier plausibility gate
// (domain.ErrInvalidIdentifier), never for source failures.
func (s *AggregatorService) Aggregate(ctx context.Context, req *domain.SearchRequest) (*domain.AggregateResult, error) {
	identifier := ""
	brand := ""
	if req != nil {
		identifier = strings.TrimSpace(req.ProductNumber)
		brand = strings.TrimSpace(req.Brand)
	}

	if !s.validator.IsPlausible(identifier) {
		s.logger.Info("rejected implausible product number", zap.String("identifier", identifier))
		return &domain.AggregateResult{
			ModelNumber: identifier,
			Brand:       brand,
			Offers:      make(map[string]domain.SourceOffer),
			Error:       domain.InvalidIdentifierMessage,
		}, domain.ErrInvalidIdentifier
	}

	cacheKey := s.cacheKey(identifier, brand)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		s.logger.Debug("cache hit", zap.String("key", cacheKey))
		return cached, nil
	}

	outcomes := s.fanOut(ctx, identifier, brand)
	result := Reconcile(identifier, brand, outcomes)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}

	s.logger.Info("search reconciled",
		zap.String("identifier", identifier),
		zap.String("brand", brand),
		zap.Int("offers", len(result.Offers)),
		zap.Int("failures", failed))

	if result.Error == "" {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			// A dead cache must not fail the search.
			s.logger.Warn("failed to cache result", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return result, nil
}

// fanOut dispatches every adapter concurrently and waits for all of them.
// Each task writes only to its own outcome slot, so the join is the sole
// synchronization point. There is no early termination: a failed source is
// recorded, not propagated.
func (s *AggregatorService) fanOut(ctx context.Context, identifier, brand string) []SourceOutcome {
	outcomes := make([]SourceOutcome, len(s.adapters))

	var group errgroup.Group
	if s.fanOutLimit > 0 {
		group.SetLimit(s.fanOutLimit)
	}

	for i, adapter := range s.adapters {
		i, adapter := i, adapter
		group.Go(func() error {
			outcomes[i] = s.runAdapter(ctx, adapter, identifier, brand)
			return nil
		})
	}

	// Tasks never return an error; Wait is purely the join.
	_ = group.Wait()

	return outcomes
}

// runAdapter invokes one adapter and converts any fault (an error return or
// a panic) into a recorded outcome so one source can never abort the others.
func (s *AggregatorService) runAdapter(ctx context.Context, adapter domain.SourceAdapter, identifier, brand string) (outcome SourceOutcome) {
	outcome.Source = adapter.Name()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("adapter panicked",
				zap.String("source", outcome.Source),
				zap.Any("panic", r))
			outcome.Fragment = nil
			outcome.Err = domain.NewSourceError(outcome.Source, fmt.Errorf("panic: %v", r))
		}
	}()

	frag, err := adapter.Search(ctx, identifier, brand)
	if err != nil {
		s.logger.Warn("source search failed",
			zap.String("source", outcome.Source),
			zap.Error(err))
		if _, ok := err.(*domain.SourceError); !ok {
			err = domain.NewSourceError(outcome.Source, err)
		}
		outcome.Err = err
		return outcome
	}

	outcome.Fragment = frag
	return outcome
}

// cacheKey normalizes identifier and brand into a stable cache key.
func (s *AggregatorService) cacheKey(identifier, brand string) string {
	normalize := func(v string) string {
		v = strings.ToLower(strings.TrimSpace(v))
		return cacheKeyCleanRegex.ReplaceAllString(v, "")
	}
	return fmt.Sprintf("product:%s:%s", normalize(identifier), normalize(brand))
}
