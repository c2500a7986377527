package retailer

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// SourceBuild is the fifth-priority source.
const SourceBuild = "buildcom"

// NewBuild builds the Build.com adapter.
func NewBuild(fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	return newAdapter(profile{
		name: SourceBuild,
		searchURL: func(base, identifier, brand string) string {
			return fmt.Sprintf("%s/search?term=%s", base, url.QueryEscape(searchTerms(brand, identifier)))
		},
		selectors: selectorSet{
			name: []string{
				"h1[data-automation='product-title']",
				"h1.product-title",
			},
			brand: []string{
				"[data-automation='product-brand']",
				".product-brand a",
			},
			rawPrice: []string{
				"[data-automation='product-price']",
				".price-display",
			},
			stock: []string{
				"[data-automation='stock-message']",
				".lead-time-message",
			},
			sku: []string{
				"[data-automation='product-sku']",
			},
			model: []string{
				"[data-automation='model-number']",
				".model-number",
			},
			description: []string{
				"[data-automation='product-description']",
				".product-description",
			},
			category: []string{
				".breadcrumbs li:nth-last-child(2) a",
			},
			specs: []string{
				"#specifications table",
				".specifications table",
			},
		},
	}, fetcher, baseURL, logger)
}
