package domain

// SearchRequest is the input for a product aggregation search
type SearchRequest struct {
	ProductNumber string `json:"productNumber" binding:"required"`
	Brand         string `json:"brand,omitempty"`
}

// SourceOffer represents one retailer's view of the product.
// Price is nil when the price text was missing or unparsable; RawPrice keeps
// the original text for diagnostics and is never re-derived from Price.
type SourceOffer struct {
	Price       *float64 `json:"price,omitempty"`
	RawPrice    string   `json:"rawPrice,omitempty"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	InStock     bool     `json:"inStock"`
	ModelNumber string   `json:"modelNumber,omitempty"`
	SKU         string   `json:"sku,omitempty"`
}

// Fragment is the partial result produced by a single source adapter's
// successful search, prior to merging. Every field is best-effort: a field the
// page didn't yield stays at its zero value.
type Fragment struct {
	ProductName    string            `json:"productName,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Category       string            `json:"category,omitempty"`
	Description    string            `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Offer          *SourceOffer      `json:"offer,omitempty"`
}

// AggregateResult is the canonical merged answer for one search.
// Offers is keyed by source name (one entry per adapter); Sources records the
// adapter priority order of the offers, since map iteration order can't.
// Error is set only when the search never ran (invalid identifier) or every
// source failed.
type AggregateResult struct {
	ProductName    string                 `json:"productName,omitempty"`
	Brand          string                 `json:"brand,omitempty"`
	Category       string                 `json:"category,omitempty"`
	Description    string                 `json:"description,omitempty"`
	ModelNumber    string                 `json:"modelNumber"`
	Specifications map[string]string      `json:"specifications,omitempty"`
	Offers         map[string]SourceOffer `json:"offers"`
	Sources        []string               `json:"sources,omitempty"`
	Error          string                 `json:"error,omitempty"`
}
