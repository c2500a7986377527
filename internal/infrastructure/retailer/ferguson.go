package retailer

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// SourceFerguson is the highest-priority source for plumbing product numbers.
const SourceFerguson = "ferguson"

// NewFerguson builds the Ferguson adapter. Ferguson is the reference
// implementation: it has canonical per-product-number pages, a spec table on
// every detail page, and a searchable catalog keyed by manufacturer number.
func NewFerguson(fetcher *Fetcher, baseURL string, logger *zap.Logger) *Adapter {
	return newAdapter(profile{
		name: SourceFerguson,
		productURL: func(base, identifier string) string {
			return fmt.Sprintf("%s/product/%s", base, url.PathEscape(identifier))
		},
		searchURL: func(base, identifier, brand string) string {
			return fmt.Sprintf("%s/search/%s", base, url.PathEscape(searchTerms(brand, identifier)))
		},
		selectors: selectorSet{
			name: []string{
				"h1.product-title",
				"h1[data-testid='product-title']",
				".pdp-header h1",
			},
			brand: []string{
				".product-brand a",
				"[data-testid='product-brand']",
				"[itemprop='brand']",
			},
			rawPrice: []string{
				".product-price .price",
				"[data-testid='product-price']",
				"span.price-current",
			},
			stock: []string{
				".availability-message",
				"[data-testid='availability']",
				".product-stock-status",
			},
			sku: []string{
				"[data-testid='product-sku']",
				".product-sku",
			},
			model: []string{
				".manufacturer-number",
				"[data-testid='mfr-number']",
				"[itemprop='mpn']",
			},
			description: []string{
				".product-description",
				"[data-testid='product-description']",
				"#product-overview p",
			},
			category: []string{
				".breadcrumbs li:nth-last-child(2) a",
				"nav[aria-label='breadcrumb'] li:nth-last-child(2)",
			},
			specs: []string{
				"#specifications table",
				".product-specifications table",
				".spec-table",
			},
		},
	}, fetcher, baseURL, logger)
}

// searchTerms joins the brand hint and identifier into one query string.
func searchTerms(brand, identifier string) string {
	if brand == "" {
		return identifier
	}
	return strings.TrimSpace(brand + " " + identifier)
}
