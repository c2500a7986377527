package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned when a product number fails the plausibility gate
	ErrInvalidIdentifier = errors.New("invalid product number format")

	// ErrNoProductFound is returned when a source page yielded no product data
	ErrNoProductFound = errors.New("no product found")

	// ErrFetchFailed is returned when a retailer request fails at the transport level
	ErrFetchFailed = errors.New("retailer request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache backend is unreachable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// InvalidIdentifierMessage is the user-visible text placed on AggregateResult.Error
// when the plausibility gate rejects a product number.
const InvalidIdentifierMessage = "Invalid product number format"

// SourceError is the total failure of one adapter's fetch/parse pipeline.
// It carries the source name so the orchestrator can record which retailer
// failed without losing the underlying cause.
type SourceError struct {
	Source string
	Cause  error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("%s: search failed", e.Source)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSourceError wraps cause as a failure of the named source.
func NewSourceError(source string, cause error) *SourceError {
	return &SourceError{Source: source, Cause: cause}
}
