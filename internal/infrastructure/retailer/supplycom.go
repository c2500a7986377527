package retailer

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// SourceSupply is the fourth-priority source.
const SourceSupply = "supplycom"

// NewSupply builds the Supply.com adapter. Supply.com keys product pages by
// manufacturer number directly, so the direct phase usually suffices.
func NewSupply(fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	return newAdapter(profile{
		name: SourceSupply,
		productURL: func(base, identifier string) string {
			return fmt.Sprintf("%s/product/%s", base, url.PathEscape(identifier))
		},
		searchURL: func(base, identifier, brand string) string {
			return fmt.Sprintf("%s/search?query=%s", base, url.QueryEscape(searchTerms(brand, identifier)))
		},
		selectors: selectorSet{
			name: []string{
				"h1.product-name",
				"[itemprop='name']",
			},
			brand: []string{
				".product-manufacturer a",
				"[itemprop='brand']",
			},
			rawPrice: []string{
				".product-price",
				"[itemprop='price']",
			},
			stock: []string{
				".stock-status",
				".availability",
			},
			sku: []string{
				".product-sku",
				"[itemprop='sku']",
			},
			model: []string{
				".product-mpn",
				"[itemprop='mpn']",
			},
			description: []string{
				".product-description",
				"[itemprop='description']",
			},
			category: []string{
				".breadcrumb li:nth-last-child(2) a",
			},
			specs: []string{
				".product-specs table",
				"#specs table",
			},
		},
	}, fetcher, baseURL, logger)
}
