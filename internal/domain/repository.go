package domain

import (
	"context"
	"time"
)

// SourceAdapter is one retailer's fetch+parse pipeline. Search returns a
// best-effort Fragment, or a *SourceError when the source yielded nothing
// usable. Adapters never share state; each owns its transport session.
type SourceAdapter interface {
	// Name identifies the retailer (e.g. "ferguson"); it keys the offer in the
	// merged result and prefixes failure messages.
	Name() string

	// Search looks up a product number, optionally narrowed by brand.
	Search(ctx context.Context, identifier, brand string) (*Fragment, error)
}

// CacheRepository defines the interface for caching merged results
type CacheRepository interface {
	Get(ctx context.Context, key string) (*AggregateResult, error)
	Set(ctx context.Context, key string, value *AggregateResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
