package retailer

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// SourceLowes is the third-priority source.
const SourceLowes = "lowes"

// NewLowes builds the Lowe's adapter.
func NewLowes(fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	return newAdapter(profile{
		name: SourceLowes,
		searchURL: func(base, identifier, brand string) string {
			return fmt.Sprintf("%s/search?searchTerm=%s", base, url.QueryEscape(searchTerms(brand, identifier)))
		},
		selectors: selectorSet{
			name: []string{
				"h1.pdp-title",
				"h1[data-testid='product-title']",
			},
			brand: []string{
				".pdp-brand a",
				"[data-testid='brand-link']",
			},
			rawPrice: []string{
				".main-price",
				"[data-testid='main-price']",
				".price-section .price",
			},
			stock: []string{
				".fulfillment-msg",
				"[data-testid='availability-message']",
			},
			sku: []string{
				"[data-testid='item-number']",
				".item-number",
			},
			model: []string{
				"[data-testid='model-number']",
				".model-number",
			},
			description: []string{
				".pdp-description",
				"#product-description p",
			},
			category: []string{
				".breadcrumb li:nth-last-child(2) a",
			},
			specs: []string{
				"#specifications table",
				".specifications-table",
			},
		},
	}, fetcher, baseURL, logger)
}
